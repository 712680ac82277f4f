// Package openai is a typed client for the OpenAI HTTP API.
//
// The primary entry point is [Client], created with [New] or [NewFromEnv]:
//
//	client := openai.New(os.Getenv("OPENAI_API_KEY"))
//
//	resp, err := client.Chat(ctx, &openai.ChatParam{
//	    Model: "gpt-3.5-turbo",
//	    Messages: []openai.ChatMessage{
//	        {Role: openai.RoleUser, Content: "Hello!"},
//	    },
//	})
//
// A Client is an immutable value. Credential changes produce a new Client
// whose transport is rebuilt with matching default headers:
//
//	scoped := client.WithOrganization("org-123")
//
// # Streaming
//
// StreamChat and StreamCompletion return a [Stream] that decodes
// server-sent events one at a time:
//
//	stream, err := client.StreamCompletion(ctx, param)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	for {
//	    event, err := stream.Recv()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(event.Choices[0].Text)
//	}
//
// # Error Handling
//
// Failures reported by the API decode to [*APIError] and carry the
// structured message, type, param and code; everything else wraps one of
// the sentinel errors ([ErrNetwork], [ErrDecode], [ErrInvalidURL],
// [ErrSerialize]) and is classified with errors.Is:
//
//	var apiErr *openai.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.Message)
//	}
//
// The client never retries: callers wanting resilience add it themselves.
package openai
