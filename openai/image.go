package openai

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
)

const (
	imageGenerationsPath = "images/generations"
	imageEditsPath       = "images/edits"
	imageVariationsPath  = "images/variations"
)

// ImageSize is the resolution of generated images.
type ImageSize string

const (
	ImageSize256  ImageSize = "256x256"
	ImageSize512  ImageSize = "512x512"
	ImageSize1024 ImageSize = "1024x1024"
)

// GenerateImageParam are the inputs to GenerateImage.
type GenerateImageParam struct {
	// Prompt is a text description of the desired image(s), at most 1000
	// characters. Required.
	Prompt string `json:"prompt"`

	// N is the number of images to generate, between 1 and 10.
	N int `json:"n,omitempty"`

	// Size of the generated images.
	Size ImageSize `json:"size,omitempty"`

	// User is an identifier for the end user.
	User string `json:"user,omitempty"`
}

func (p *GenerateImageParam) validate() error {
	if p == nil || p.Prompt == "" {
		return ErrPromptRequired
	}
	return nil
}

// EditImageParam are the inputs to EditImage.
type EditImageParam struct {
	// Image is the path of the PNG to edit. Required.
	Image string

	// Mask is the path of a PNG whose transparent areas indicate where
	// Image should be edited. Optional.
	Mask string

	// Prompt describes the desired result. Required.
	Prompt string

	// N is the number of images to generate, between 1 and 10.
	N int

	// Size of the generated images.
	Size ImageSize

	// User is an identifier for the end user.
	User string
}

func (p *EditImageParam) validate() error {
	if p == nil || p.Image == "" {
		return ErrFileRequired
	}
	if p.Prompt == "" {
		return ErrPromptRequired
	}
	return nil
}

// VariateImageParam are the inputs to VariateImage.
type VariateImageParam struct {
	// Image is the path of the PNG to produce variations of. Required.
	Image string

	// N is the number of images to generate, between 1 and 10.
	N int

	// Size of the generated images.
	Size ImageSize

	// User is an identifier for the end user.
	User string
}

func (p *VariateImageParam) validate() error {
	if p == nil || p.Image == "" {
		return ErrFileRequired
	}
	return nil
}

// ImageData is one generated image, referenced by URL.
type ImageData struct {
	URL string `json:"url"`
}

// Image is the response to generate, edit and variation requests.
type Image struct {
	Created int64       `json:"created,omitempty"`
	Data    []ImageData `json:"data"`
}

// GenerateImage creates image(s) from a text prompt.
func (c *Client) GenerateImage(ctx context.Context, param *GenerateImageParam) (*Image, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return post[GenerateImageParam, Image](ctx, c, imageGenerationsPath, param)
}

// EditImage creates edited image(s) from an original and a prompt.
func (c *Client) EditImage(ctx context.Context, param *EditImageParam) (*Image, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return postForm[Image](ctx, c, imageEditsPath, func(w *multipart.Writer) error {
		if err := writeFilePart(w, "image", param.Image); err != nil {
			return err
		}
		if param.Mask != "" {
			if err := writeFilePart(w, "mask", param.Mask); err != nil {
				return err
			}
		}
		return writeImageFields(w, param.Prompt, param.N, param.Size, param.User)
	})
}

// VariateImage creates variation(s) of the given image.
func (c *Client) VariateImage(ctx context.Context, param *VariateImageParam) (*Image, error) {
	if err := param.validate(); err != nil {
		return nil, err
	}
	return postForm[Image](ctx, c, imageVariationsPath, func(w *multipart.Writer) error {
		if err := writeFilePart(w, "image", param.Image); err != nil {
			return err
		}
		return writeImageFields(w, "", param.N, param.Size, param.User)
	})
}

// SaveImages downloads every generated image into dir, named after the
// last segment of its URL.
func (c *Client) SaveImages(ctx context.Context, img *Image, dir string) error {
	for i, data := range img.Data {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, data.URL, nil)
		if err != nil {
			return &Error{Op: "save image", Message: err.Error(), Err: ErrInvalidURL}
		}
		resp, err := c.config.HTTPClient.Do(req)
		if err != nil {
			return &Error{Op: "save image", Message: err.Error(), Err: ErrNetwork}
		}

		name := path.Base(resp.Request.URL.Path)
		if name == "." || name == "/" {
			name = fmt.Sprintf("image_%d.png", i)
		}
		out, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			resp.Body.Close()
			return err
		}
		_, err = io.Copy(out, resp.Body)
		resp.Body.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFilePart(w *multipart.Writer, field, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	part, err := w.CreateFormFile(field, filepath.Base(filePath))
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}

func writeImageFields(w *multipart.Writer, prompt string, n int, size ImageSize, user string) error {
	if prompt != "" {
		if err := w.WriteField("prompt", prompt); err != nil {
			return err
		}
	}
	if n > 0 {
		if err := w.WriteField("n", strconv.Itoa(n)); err != nil {
			return err
		}
	}
	if size != "" {
		if err := w.WriteField("size", string(size)); err != nil {
			return err
		}
	}
	if user != "" {
		if err := w.WriteField("user", user); err != nil {
			return err
		}
	}
	return nil
}
