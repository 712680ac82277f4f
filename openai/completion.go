package openai

import "context"

const completionsPath = "completions"

// CompletionParam are the inputs to Completion and StreamCompletion.
type CompletionParam struct {
	// Model to use, e.g. "text-davinci-003". Required.
	Model string `json:"model"`

	// Prompt(s) to generate completions for.
	Prompt []string `json:"prompt,omitempty"`

	// Suffix that comes after a completion of inserted text.
	Suffix string `json:"suffix,omitempty"`

	// MaxTokens caps the generated tokens. The prompt plus MaxTokens must
	// fit the model's context length.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature is the sampling temperature. Higher values mean more
	// risk; try 0.9 for creative applications and 0 for well-defined
	// answers.
	Temperature float64 `json:"temperature,omitempty"`

	// TopP is the nucleus sampling probability mass. Alter this or
	// Temperature, not both.
	TopP float64 `json:"top_p,omitempty"`

	// N is how many completions to generate per prompt.
	N int `json:"n,omitempty"`

	// Stream requests partial progress. Set by StreamCompletion.
	Stream bool `json:"stream,omitempty"`

	// Logprobs includes log probabilities on the most likely tokens.
	Logprobs int `json:"logprobs,omitempty"`

	// Echo returns the prompt in addition to the completion.
	Echo bool `json:"echo,omitempty"`

	// Stop is a sequence where the API stops generating further tokens.
	Stop string `json:"stop,omitempty"`

	// PresencePenalty, between -2.0 and 2.0.
	PresencePenalty float64 `json:"presence_penalty,omitempty"`

	// FrequencyPenalty, between -2.0 and 2.0.
	FrequencyPenalty float64 `json:"frequency_penalty,omitempty"`

	// BestOf generates completions server-side and returns the best.
	// Results cannot be streamed.
	BestOf int `json:"best_of,omitempty"`

	// User is an identifier for the end user.
	User string `json:"user,omitempty"`
}

func (p *CompletionParam) validate() error {
	if p == nil || p.Model == "" {
		return ErrModelRequired
	}
	return nil
}

// Completion is the response to a completion request and also the event
// type of a completion stream.
type Completion struct {
	ID      string      `json:"id,omitempty"`
	Object  string      `json:"object,omitempty"`
	Created int64       `json:"created,omitempty"`
	Model   string      `json:"model,omitempty"`
	Choices []Choice    `json:"choices"`
	Usage   *TokenUsage `json:"usage,omitempty"`
}

// Completion generates text for the given prompt.
func (c *Client) Completion(ctx context.Context, param *CompletionParam) (*Completion, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return post[CompletionParam, Completion](ctx, c, completionsPath, param)
}

// StreamCompletion generates text and streams partial progress. The caller
// must drain the stream to io.EOF or Close it.
func (c *Client) StreamCompletion(ctx context.Context, param *CompletionParam) (*Stream[Completion], error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	p := *param
	p.Stream = true
	resp, err := postStream(ctx, c, completionsPath, &p)
	if err != nil {
		return nil, err
	}
	return NewStream[Completion](resp.Body), nil
}
