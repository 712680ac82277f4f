package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrNetwork    = errors.New("network error")
	ErrDecode     = errors.New("decode error")
	ErrInvalidURL = errors.New("invalid url")
	ErrSerialize  = errors.New("serialize error")
)

// Validation errors with actionable guidance.
var (
	ErrModelRequired        = errors.New("model required: set Model on the parameter struct")
	ErrNoMessages           = errors.New("no messages: add at least one ChatMessage")
	ErrInstructionRequired  = errors.New("instruction required: set Instruction on the parameter struct")
	ErrInputRequired        = errors.New("input required: set Input on the parameter struct")
	ErrPromptRequired       = errors.New("prompt required: set Prompt on the parameter struct")
	ErrFileRequired         = errors.New("file required: set the file path on the parameter struct")
	ErrPurposeRequired      = errors.New("purpose required: set Purpose on the parameter struct")
	ErrTrainingFileRequired = errors.New("training file required: set TrainingFile on the parameter struct")
)

// Error wraps transport, URL, serialization and decode failures with the
// operation that produced them. Err is one of the sentinel errors above and
// is reachable through errors.Is.
type Error struct {
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the sentinel for error chaining.
func (e *Error) Unwrap() error {
	return e.Err
}

// APIError is a failure reported by the API itself, carried in the response
// body. It is the only error kind meant to be shown to end users directly.
//
// Param and Code are kept as raw JSON because the API has historically
// returned them as null, strings, or numbers depending on the revision; use
// ParamName and CodeNumber for typed access. Match with errors.As.
type APIError struct {
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Param   json.RawMessage `json:"param,omitempty"`
	Code    json.RawMessage `json:"code,omitempty"`

	// Status and RequestID come from the HTTP response, not the body.
	// Both are zero for errors embedded in a 200 body or a stream event.
	Status    int    `json:"-"`
	RequestID string `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Type != "" {
		fmt.Fprintf(&b, " (type=%s", e.Type)
		if p := e.ParamName(); p != "" {
			fmt.Fprintf(&b, ", param=%s", p)
		}
		if e.Status != 0 {
			fmt.Fprintf(&b, ", status=%d", e.Status)
		}
		if e.RequestID != "" {
			fmt.Fprintf(&b, ", request_id=%s", e.RequestID)
		}
		b.WriteString(")")
	}
	return b.String()
}

// ParamName returns the offending parameter name, or "" when the API sent
// null or omitted it.
func (e *APIError) ParamName() string {
	var s string
	if err := json.Unmarshal(e.Param, &s); err != nil {
		return ""
	}
	return s
}

// CodeNumber returns the numeric error code when the API sent one.
func (e *APIError) CodeNumber() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(e.Code)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// CodeString returns the error code as a string, covering revisions where
// the API sends string codes such as "invalid_api_key".
func (e *APIError) CodeString() string {
	var s string
	if err := json.Unmarshal(e.Code, &s); err != nil {
		return ""
	}
	return s
}
