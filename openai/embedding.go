package openai

import "context"

const embeddingsPath = "embeddings"

// EmbeddingParam are the inputs to Embeddings.
type EmbeddingParam struct {
	// Model to use, e.g. "text-embedding-ada-002". Required.
	Model string `json:"model"`

	// Input text to embed. Required.
	Input string `json:"input"`

	// User is an identifier for the end user.
	User string `json:"user,omitempty"`
}

func (p *EmbeddingParam) validate() error {
	if p == nil || p.Model == "" {
		return ErrModelRequired
	}
	if p.Input == "" {
		return ErrInputRequired
	}
	return nil
}

// EmbeddingData is one embedding vector.
type EmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// Embedding is the response to an embeddings request.
type Embedding struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model,omitempty"`
	Usage  *TokenUsage     `json:"usage,omitempty"`
}

// Embeddings returns a vector representation of the input text.
func (c *Client) Embeddings(ctx context.Context, param *EmbeddingParam) (*Embedding, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return post[EmbeddingParam, Embedding](ctx, c, embeddingsPath, param)
}
