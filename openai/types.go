package openai

// TokenUsage reports the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one generated alternative in completion and edit responses.
type Choice struct {
	Text         string   `json:"text,omitempty"`
	Index        int      `json:"index"`
	Logprobs     *float64 `json:"logprobs,omitempty"`
	FinishReason string   `json:"finish_reason,omitempty"`
}

// Deleted acknowledges a delete request, e.g. DeleteFile and
// DeleteFineTuneModel.
type Deleted struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
