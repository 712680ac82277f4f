package openai

import "context"

const chatCompletionsPath = "chat/completions"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	// Role of the author: system, user, assistant or function.
	Role Role `json:"role"`

	// Content of the message.
	Content string `json:"content"`

	// Name of the author. Optional.
	Name string `json:"name,omitempty"`
}

// ChatParam are the inputs to Chat and StreamChat.
type ChatParam struct {
	// Model to use, e.g. "gpt-3.5-turbo". Required.
	Model string `json:"model"`

	// Messages describing the conversation so far. Required.
	Messages []ChatMessage `json:"messages"`

	// FrequencyPenalty penalizes tokens by their frequency in the text so
	// far, decreasing the chance of repeating the same line verbatim.
	FrequencyPenalty float64 `json:"frequency_penalty,omitempty"`

	// MaxTokens caps the number of tokens generated for the completion.
	MaxTokens int `json:"max_tokens,omitempty"`

	// N is how many chat completion choices to generate per input.
	N int `json:"n,omitempty"`

	// PresencePenalty penalizes tokens that already appeared in the text
	// so far, increasing the chance of new topics.
	PresencePenalty float64 `json:"presence_penalty,omitempty"`

	// Seed makes sampling deterministic on a best-effort basis.
	Seed int64 `json:"seed,omitempty"`

	// Stop is a sequence where the API stops generating further tokens.
	Stop string `json:"stop,omitempty"`

	// Stream requests partial message deltas. Set by StreamChat.
	Stream bool `json:"stream,omitempty"`

	// Temperature is the sampling temperature, between 0 and 2.
	Temperature float64 `json:"temperature,omitempty"`

	// TopP is the nucleus sampling probability mass.
	TopP float64 `json:"top_p,omitempty"`

	// User is an identifier for the end user.
	User string `json:"user,omitempty"`
}

func (p *ChatParam) validate() error {
	if p == nil || p.Model == "" {
		return ErrModelRequired
	}
	if len(p.Messages) == 0 {
		return ErrNoMessages
	}
	return nil
}

// ChatChoice is one generated reply.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// Chat is the response to a chat completion request.
type Chat struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model,omitempty"`
	Choices []ChatChoice `json:"choices"`
	Usage   TokenUsage   `json:"usage"`
}

// ChatDelta is the incremental message fragment carried by one streamed
// chunk.
type ChatDelta struct {
	Role    Role   `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// ChatChunkChoice pairs a delta with its choice index.
type ChatChunkChoice struct {
	Index        int       `json:"index"`
	Delta        ChatDelta `json:"delta"`
	FinishReason *string   `json:"finish_reason,omitempty"`
}

// ChatChunk is one streamed event of a chat completion.
type ChatChunk struct {
	ID      string            `json:"id,omitempty"`
	Object  string            `json:"object,omitempty"`
	Created int64             `json:"created,omitempty"`
	Model   string            `json:"model,omitempty"`
	Choices []ChatChunkChoice `json:"choices"`
	Usage   *TokenUsage       `json:"usage,omitempty"`
}

// Chat sends the conversation and returns the model's reply.
func (c *Client) Chat(ctx context.Context, param *ChatParam) (*Chat, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return post[ChatParam, Chat](ctx, c, chatCompletionsPath, param)
}

// StreamChat sends the conversation and returns a live stream of deltas.
// The caller must drain the stream to io.EOF or Close it to release the
// connection.
func (c *Client) StreamChat(ctx context.Context, param *ChatParam) (*Stream[ChatChunk], error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	p := *param
	p.Stream = true
	resp, err := postStream(ctx, c, chatCompletionsPath, &p)
	if err != nil {
		return nil, err
	}
	return NewStream[ChatChunk](resp.Body), nil
}
