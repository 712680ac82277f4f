package commands

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quill-labs/opal/cli/config"
	"github.com/quill-labs/opal/openai"
)

func TestExitError(t *testing.T) {
	err := exitWithCode(ExitValidation, errors.New("test error"))

	if err.Error() != "test error" {
		t.Errorf("Error() = %q, want 'test error'", err.Error())
	}

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}

	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitValidation)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"success", ExitSuccess, 0},
		{"validation", ExitValidation, 1},
		{"api", ExitAPI, 2},
		{"network", ExitNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("Exit%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}

// testApp builds an App wired to the given server with captured output.
func testApp(t *testing.T, srv *httptest.Server) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var stdout, stderr bytes.Buffer
	app := NewApp(
		WithConfigLoader(func(path string) (*config.Config, error) {
			return &config.Config{}, nil
		}),
		WithClientFactory(func(apiKey string, cfg *config.Config, verbose bool) *openai.Client {
			return openai.New(apiKey, openai.WithBaseURL(srv.URL+"/"))
		}),
		WithIO(strings.NewReader(""), &stdout, &stderr),
	)
	return app, &stdout, &stderr
}

func TestChatCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 2, "total_tokens": 3}
		}`)
	}))
	defer srv.Close()

	app, stdout, _ := testApp(t, srv)
	app.root.SetArgs([]string{"chat", "--model", "gpt-3.5-turbo", "--prompt", "hi"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "Hello!") {
		t.Errorf("stdout = %q, should contain the reply", stdout.String())
	}
}

func TestChatCommandStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	app, stdout, _ := testApp(t, srv)
	app.root.SetArgs([]string{"chat", "--model", "gpt-3.5-turbo", "--prompt", "hi", "--stream"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "Hello") {
		t.Errorf("stdout = %q, should contain assembled reply", stdout.String())
	}
}

func TestChatCommandMissingModel(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	app, _, _ := testApp(t, srv)
	app.root.SetArgs([]string{"chat", "--prompt", "hi"})

	err := app.Execute()
	if err == nil {
		t.Fatal("Execute() should fail without a model")
	}

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error type = %T, want *exitError", err)
	}
	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitValidation)
	}
}

func TestChatCommandAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`)
	}))
	defer srv.Close()

	app, _, stderr := testApp(t, srv)
	app.root.SetArgs([]string{"chat", "--model", "gpt-3.5-turbo", "--prompt", "hi"})

	err := app.Execute()
	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatalf("error type = %T, want *exitError", err)
	}
	if exitErr.ExitCode() != ExitAPI {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitAPI)
	}
	if !strings.Contains(stderr.String(), "Incorrect API key provided") {
		t.Errorf("stderr = %q, should contain the API message", stderr.String())
	}
}

func TestHandleChatErrorValidation(t *testing.T) {
	app := NewApp(WithIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}))

	err := app.handleChatError(openai.ErrModelRequired)

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}

	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d (ExitValidation)", exitErr.ExitCode(), ExitValidation)
	}
}

func TestHandleChatErrorNetwork(t *testing.T) {
	app := NewApp(WithIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}))

	err := app.handleChatError(&openai.Error{Op: "POST chat/completions", Message: "refused", Err: openai.ErrNetwork})

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}

	if exitErr.ExitCode() != ExitNetwork {
		t.Errorf("ExitCode() = %d, want %d (ExitNetwork)", exitErr.ExitCode(), ExitNetwork)
	}
}

func TestHandleChatErrorAPI(t *testing.T) {
	app := NewApp(WithIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}))

	apiErr := &openai.APIError{
		Message:   "Too many requests",
		Type:      "rate_limit_error",
		Status:    429,
		RequestID: "req_123",
	}

	err := app.handleChatError(apiErr)

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}

	if exitErr.ExitCode() != ExitAPI {
		t.Errorf("ExitCode() = %d, want %d (ExitAPI)", exitErr.ExitCode(), ExitAPI)
	}
}
