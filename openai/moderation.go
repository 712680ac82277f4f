package openai

import "context"

const moderationsPath = "moderations"

// ModerationParam are the inputs to Moderation.
type ModerationParam struct {
	// Model is the moderation model: "text-moderation-stable" or
	// "text-moderation-latest". Optional.
	Model string `json:"model,omitempty"`

	// Input text to classify. Required.
	Input string `json:"input"`
}

func (p *ModerationParam) validate() error {
	if p == nil || p.Input == "" {
		return ErrInputRequired
	}
	return nil
}

// ModerationCategories holds per-category policy violation flags.
type ModerationCategories struct {
	Hate            bool `json:"hate"`
	HateThreatening bool `json:"hate/threatening"`
	SelfHarm        bool `json:"self-harm"`
	Sexual          bool `json:"sexual"`
	SexualMinors    bool `json:"sexual/minors"`
	Violence        bool `json:"violence"`
	ViolenceGraphic bool `json:"violence/graphic"`
}

// ModerationCategoryScores holds the model's per-category confidence,
// between 0 and 1. Not probabilities.
type ModerationCategoryScores struct {
	Hate            float64 `json:"hate"`
	HateThreatening float64 `json:"hate/threatening"`
	SelfHarm        float64 `json:"self-harm"`
	Sexual          float64 `json:"sexual"`
	SexualMinors    float64 `json:"sexual/minors"`
	Violence        float64 `json:"violence"`
	ViolenceGraphic float64 `json:"violence/graphic"`
}

// ModerationResult is the classification of one input.
type ModerationResult struct {
	Flagged        bool                     `json:"flagged"`
	Categories     ModerationCategories     `json:"categories"`
	CategoryScores ModerationCategoryScores `json:"category_scores"`
}

// Moderation is the response to a moderation request.
type Moderation struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Results []ModerationResult `json:"results"`
}

// Moderation classifies whether the input violates the content policy.
func (c *Client) Moderation(ctx context.Context, param *ModerationParam) (*Moderation, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return post[ModerationParam, Moderation](ctx, c, moderationsPath, param)
}
