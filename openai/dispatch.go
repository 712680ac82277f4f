package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// request serializes param (when present), issues exactly one HTTP call
// and decodes the body through the envelope decoder. There are no retries
// and no caching: concurrent identical calls are independent.
func request[P, T any](ctx context.Context, c *Client, method, path string, param *P) (*T, error) {
	op := method + " " + path

	var body io.Reader
	if param != nil {
		data, err := json.Marshal(param)
		if err != nil {
			return nil, &Error{Op: op, Message: err.Error(), Err: ErrSerialize}
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, method, path, body, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeResponse[T](op, resp)
}

func get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	return request[struct{}, T](ctx, c, http.MethodGet, path, nil)
}

func post[P, T any](ctx context.Context, c *Client, path string, param *P) (*T, error) {
	return request[P, T](ctx, c, http.MethodPost, path, param)
}

func del[T any](ctx context.Context, c *Client, path string) (*T, error) {
	return request[struct{}, T](ctx, c, http.MethodDelete, path, nil)
}

// postForm sends a multipart form built by fill and decodes the response
// through the same envelope decoder as JSON calls.
func postForm[T any](ctx context.Context, c *Client, path string, fill func(*multipart.Writer) error) (*T, error) {
	op := http.MethodPost + " " + path

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return nil, &Error{Op: op, Message: err.Error(), Err: ErrSerialize}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Op: op, Message: err.Error(), Err: ErrSerialize}
	}

	resp, err := c.send(ctx, http.MethodPost, path, &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeResponse[T](op, resp)
}

// postStream issues the request and hands back the still-open response.
func postStream[P any](ctx context.Context, c *Client, path string, param *P) (*http.Response, error) {
	op := http.MethodPost + " " + path

	var body io.Reader
	if param != nil {
		data, err := json.Marshal(param)
		if err != nil {
			return nil, &Error{Op: op, Message: err.Error(), Err: ErrSerialize}
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, http.MethodPost, path, body, "application/json")
	if err != nil {
		return nil, err
	}
	return checkStreamStatus(op, resp)
}

// getStream issues a GET and hands back the still-open response, with the
// same error-status handling as postStream.
func getStream(ctx context.Context, c *Client, path string) (*http.Response, error) {
	op := http.MethodGet + " " + path

	resp, err := c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return checkStreamStatus(op, resp)
}

// checkStreamStatus drains and decodes error statuses so the caller only
// ever receives a live body worth reading.
func checkStreamStatus(op string, resp *http.Response) (*http.Response, error) {
	if resp.StatusCode < 400 {
		return resp, nil
	}

	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if apiErr, ok := decodeAPIError(data); ok {
		apiErr.Status = resp.StatusCode
		apiErr.RequestID = resp.Header.Get("x-request-id")
		return nil, apiErr
	}
	return nil, &Error{
		Op:      op,
		Message: fmt.Sprintf("%s: %s", http.StatusText(resp.StatusCode), bodySnippet(data)),
		Err:     ErrDecode,
	}
}

// decodeResponse reads the full body and runs it through the envelope
// decoder. Transport success never implies API success: the decoder is
// consulted regardless of status code.
func decodeResponse[T any](op string, resp *http.Response) (*T, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Message: err.Error(), Err: ErrNetwork}
	}
	return decodeEnvelope[T](data, resp.StatusCode, resp.Header.Get("x-request-id"))
}

// send builds the target URL and issues the single network call. Joining
// must fail loudly: a path that cannot be resolved against the base URL is
// an error, never a silent truncation.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	op := method + " " + path

	target, err := url.JoinPath(c.config.BaseURL, path)
	if err != nil {
		return nil, &Error{Op: op, Message: err.Error(), Err: ErrInvalidURL}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Op: op, Message: err.Error(), Err: ErrInvalidURL}
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.handler.Do(req)
	if err != nil {
		c.config.Logger.Debug().Str("method", method).Str("path", path).Err(err).Msg("dispatch failed")
		return nil, &Error{Op: op, Message: err.Error(), Err: ErrNetwork}
	}

	c.config.Logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("dispatch")

	return resp, nil
}
