package openai

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
)

const filesPath = "files"

// Purpose declares the intended use of an uploaded file.
type Purpose string

const (
	PurposeFineTune        Purpose = "fine-tune"
	PurposeAnswers         Purpose = "answers"
	PurposeSearch          Purpose = "search"
	PurposeClassifications Purpose = "classifications"
)

// File describes an uploaded file.
type File struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
	Status    string `json:"status,omitempty"`
}

// ListFiles is the response to a file listing request.
type ListFiles struct {
	Object string `json:"object,omitempty"`
	Data   []File `json:"data"`
}

// UploadFileParam are the inputs to UploadFile.
type UploadFileParam struct {
	// Path of the JSON Lines file to upload. Required.
	Path string

	// Purpose of the uploaded documents. Required.
	Purpose Purpose
}

func (p *UploadFileParam) validate() error {
	if p == nil || p.Path == "" {
		return ErrFileRequired
	}
	if p.Purpose == "" {
		return ErrPurposeRequired
	}
	return nil
}

// ListFiles returns the files that belong to the user's organization.
func (c *Client) ListFiles(ctx context.Context) (*ListFiles, error) {
	return get[ListFiles](ctx, c, filesPath)
}

// UploadFile uploads a file to be used across endpoints, e.g. as
// fine-tuning training data. The form carries the file content as a named
// binary part and the purpose as a text part.
func (c *Client) UploadFile(ctx context.Context, param *UploadFileParam) (*File, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(param.Path)
	if err != nil {
		return nil, &Error{Op: "read " + param.Path, Message: err.Error(), Err: ErrSerialize}
	}
	return postForm[File](ctx, c, filesPath, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filepath.Base(param.Path))
		if err != nil {
			return err
		}
		if _, err := part.Write(data); err != nil {
			return err
		}
		return w.WriteField("purpose", string(param.Purpose))
	})
}

// RetrieveFile returns information about a specific file.
func (c *Client) RetrieveFile(ctx context.Context, fileID string) (*File, error) {
	return get[File](ctx, c, filesPath+"/"+fileID)
}

// DeleteFile deletes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*Deleted, error) {
	return del[Deleted](ctx, c, filesPath+"/"+fileID)
}
