package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/quill-labs/opal/openai"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitNetwork    = 3
)

func (a *App) newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat completion request",
		Long: `Send a chat completion request to the OpenAI API.

Examples:
  opal chat --model gpt-3.5-turbo --prompt "Hello"
  opal chat --prompt "Hello" --stream
  opal chat --prompt "Hello" --json`,
		RunE: a.runChat,
	}

	cmd.Flags().StringVar(&a.chatPrompt, "prompt", "", "User message (required)")
	cmd.Flags().StringVar(&a.chatSystem, "system", "", "System message")
	cmd.Flags().Float64Var(&a.chatTemperature, "temperature", 0, "Temperature (0 = use default)")
	cmd.Flags().IntVar(&a.chatMaxTokens, "max-tokens", 0, "Max tokens (0 = use default)")
	cmd.Flags().BoolVar(&a.chatStream, "stream", false, "Enable streaming output")

	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

func (a *App) runChat(cmd *cobra.Command, args []string) error {
	if a.model == "" {
		return exitWithCode(ExitValidation, fmt.Errorf("model required: use --model flag or set default_model in config"))
	}

	client, err := a.client()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	param := &openai.ChatParam{
		Model:       a.model,
		Temperature: a.chatTemperature,
		MaxTokens:   a.chatMaxTokens,
	}
	if a.chatSystem != "" {
		param.Messages = append(param.Messages, openai.ChatMessage{
			Role:    openai.RoleSystem,
			Content: a.chatSystem,
		})
	}
	param.Messages = append(param.Messages, openai.ChatMessage{
		Role:    openai.RoleUser,
		Content: a.chatPrompt,
	})

	ctx := context.Background()

	if a.chatStream {
		return a.runStreamingChat(ctx, client, param)
	}
	return a.runNonStreamingChat(ctx, client, param)
}

func (a *App) runNonStreamingChat(ctx context.Context, client *openai.Client, param *openai.ChatParam) error {
	resp, err := client.Chat(ctx, param)
	if err != nil {
		return a.handleChatError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(resp)
	}

	fmt.Fprintf(a.stdout, "> %s\n", a.chatPrompt)
	for _, choice := range resp.Choices {
		fmt.Fprintln(a.stdout, choice.Message.Content)
	}

	if a.verbose {
		fmt.Fprintf(a.stderr, "Usage: %d prompt + %d completion = %d total tokens\n",
			resp.Usage.PromptTokens,
			resp.Usage.CompletionTokens,
			resp.Usage.TotalTokens)
	}

	return nil
}

func (a *App) runStreamingChat(ctx context.Context, client *openai.Client, param *openai.ChatParam) error {
	stream, err := client.StreamChat(ctx, param)
	if err != nil {
		return a.handleChatError(err)
	}
	defer stream.Close()

	if !a.jsonOutput {
		fmt.Fprintf(a.stdout, "> %s\n", a.chatPrompt)
	}

	var output string
	var usage *openai.TokenUsage
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !a.jsonOutput {
				fmt.Fprintln(a.stdout)
			}
			return a.handleChatError(err)
		}

		for _, choice := range chunk.Choices {
			output += choice.Delta.Content
			if !a.jsonOutput {
				fmt.Fprint(a.stdout, choice.Delta.Content)
			}
		}
		if chunk.Usage != nil {
			usage = chunk.Usage
		}
	}

	if a.jsonOutput {
		out := map[string]interface{}{
			"model":  a.model,
			"output": output,
		}
		if usage != nil {
			out["usage"] = usage
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(a.stdout)

	if a.verbose && usage != nil {
		fmt.Fprintf(a.stderr, "Usage: %d prompt + %d completion = %d total tokens\n",
			usage.PromptTokens,
			usage.CompletionTokens,
			usage.TotalTokens)
	}

	return nil
}

func (a *App) handleChatError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if a.jsonOutput {
			a.outputErrorJSON(apiErr)
		} else {
			fmt.Fprintf(a.stderr, "Error: %s\n", apiErr.Message)
			if apiErr.RequestID != "" {
				fmt.Fprintf(a.stderr, "  Type: %s, Request ID: %s\n", apiErr.Type, apiErr.RequestID)
			}
		}
		return exitWithCode(ExitAPI, err)
	}

	// Network errors
	if errors.Is(err, openai.ErrNetwork) {
		if a.jsonOutput {
			a.outputSimpleErrorJSON("network_error", err.Error())
		} else {
			fmt.Fprintf(a.stderr, "Error: network error: %v\n", err)
		}
		return exitWithCode(ExitNetwork, err)
	}

	// Validation errors
	if errors.Is(err, openai.ErrModelRequired) || errors.Is(err, openai.ErrNoMessages) {
		if a.jsonOutput {
			a.outputSimpleErrorJSON("validation_error", err.Error())
		} else {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
		return exitWithCode(ExitValidation, err)
	}

	// Generic error
	if a.jsonOutput {
		a.outputSimpleErrorJSON("error", err.Error())
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(ExitAPI, err)
}

func (a *App) outputJSON(resp *openai.Chat) error {
	output := map[string]interface{}{
		"id":     resp.ID,
		"model":  resp.Model,
		"output": "",
		"usage": map[string]int{
			"prompt_tokens":     resp.Usage.PromptTokens,
			"completion_tokens": resp.Usage.CompletionTokens,
			"total_tokens":      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		output["output"] = resp.Choices[0].Message.Content
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func (a *App) outputErrorJSON(apiErr *openai.APIError) {
	output := map[string]interface{}{
		"error": map[string]interface{}{
			"type":       apiErr.Type,
			"message":    apiErr.Message,
			"status":     apiErr.Status,
			"request_id": apiErr.RequestID,
		},
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

func (a *App) outputSimpleErrorJSON(errType, message string) {
	output := map[string]interface{}{
		"error": map[string]interface{}{
			"type":    errType,
			"message": message,
		},
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
