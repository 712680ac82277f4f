package openai

import "context"

const editsPath = "edits"

// EditParam are the inputs to Edit.
type EditParam struct {
	// Model to use, e.g. "text-davinci-edit-001". Required.
	Model string `json:"model"`

	// Instruction that tells the model how to edit the input. Required.
	Instruction string `json:"instruction"`

	// Input text to use as a starting point for the edit.
	Input string `json:"input,omitempty"`

	// N is how many edits to generate for the input and instruction.
	N int `json:"n,omitempty"`

	// Temperature is the sampling temperature. Alter this or TopP, not
	// both.
	Temperature float64 `json:"temperature,omitempty"`

	// TopP is the nucleus sampling probability mass.
	TopP float64 `json:"top_p,omitempty"`
}

func (p *EditParam) validate() error {
	if p == nil || p.Model == "" {
		return ErrModelRequired
	}
	if p.Instruction == "" {
		return ErrInstructionRequired
	}
	return nil
}

// Edit is the response to an edit request.
type Edit struct {
	Object  string     `json:"object"`
	Created int64      `json:"created"`
	Choices []Choice   `json:"choices"`
	Usage   TokenUsage `json:"usage"`
}

// Edit returns an edited version of the input, following the instruction.
func (c *Client) Edit(ctx context.Context, param *EditParam) (*Edit, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return post[EditParam, Edit](ctx, c, editsPath, param)
}
