package openai

import "context"

const modelsPath = "models"

// Permission is one permission entry attached to a model.
type Permission struct {
	ID                 string  `json:"id"`
	Object             string  `json:"object"`
	Created            int64   `json:"created"`
	AllowCreateEngine  bool    `json:"allow_create_engine"`
	AllowSampling      bool    `json:"allow_sampling"`
	AllowLogprobs      bool    `json:"allow_logprobs"`
	AllowSearchIndices bool    `json:"allow_search_indices"`
	AllowView          bool    `json:"allow_view"`
	AllowFineTuning    bool    `json:"allow_fine_tuning"`
	Organization       string  `json:"organization"`
	Group              *string `json:"group,omitempty"`
	IsBlocking         bool    `json:"is_blocking"`
}

// Model describes an available model: owner, lineage and permissioning.
type Model struct {
	ID         string       `json:"id"`
	Object     string       `json:"object"`
	Created    int64        `json:"created,omitempty"`
	OwnedBy    string       `json:"owned_by,omitempty"`
	Permission []Permission `json:"permission,omitempty"`
	Root       string       `json:"root,omitempty"`
	Parent     *string      `json:"parent,omitempty"`
}

// Models is the response to a model listing request.
type Models struct {
	Object string  `json:"object,omitempty"`
	Data   []Model `json:"data"`
}

// ListModels lists the currently available models.
func (c *Client) ListModels(ctx context.Context) (*Models, error) {
	return get[Models](ctx, c, modelsPath)
}

// RetrieveModel gets basic information about one model.
func (c *Client) RetrieveModel(ctx context.Context, modelID string) (*Model, error) {
	return get[Model](ctx, c, modelsPath+"/"+modelID)
}
