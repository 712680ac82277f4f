package openai

import (
	"bytes"
	"encoding/json"
	"strings"
)

// bodySnippetLen bounds how much of an undecodable body is carried in the
// resulting error.
const bodySnippetLen = 256

// errorEnvelope is the current API revision: the error object nested under
// an "error" key.
type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// decodeAPIError reports whether data carries the structured error shape,
// in either revision the API has used: {"error":{"message":...,"type":...}}
// or the same fields at the top level.
func decodeAPIError(data []byte) (*APIError, bool) {
	var nested errorEnvelope
	if err := json.Unmarshal(data, &nested); err == nil && nested.Error != nil &&
		(nested.Error.Message != "" || nested.Error.Type != "") {
		return nested.Error, true
	}

	// Legacy revision: message and type directly on the object. Both must
	// be present, otherwise ordinary payloads would be misread as errors.
	var flat APIError
	if err := json.Unmarshal(data, &flat); err == nil && flat.Message != "" && flat.Type != "" {
		return &flat, true
	}

	return nil, false
}

// decodeEnvelope interprets a response body as either a structured API
// error or a success payload of type T. The error shape is always tried
// first: some endpoints embed an error object in a 200 body, so the HTTP
// status alone cannot be trusted. A body matching neither shape is a
// decode failure carrying a snippet of the original bytes, never a
// zero-valued T.
func decodeEnvelope[T any](data []byte, status int, requestID string) (*T, error) {
	if apiErr, ok := decodeAPIError(data); ok {
		apiErr.Status = status
		apiErr.RequestID = requestID
		return nil, apiErr
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, &Error{
			Op:      "decode response",
			Message: err.Error() + ": " + bodySnippet(data),
			Err:     ErrDecode,
		}
	}
	if dec.More() {
		return nil, &Error{
			Op:      "decode response",
			Message: "trailing data after JSON value: " + bodySnippet(data),
			Err:     ErrDecode,
		}
	}

	return &v, nil
}

func bodySnippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > bodySnippetLen {
		s = s[:bodySnippetLen] + "..."
	}
	return s
}
