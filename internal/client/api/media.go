package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/iudanet/storefront/pkg/api"
)

// File файл для multipart загрузки
type File struct {
	Content     io.Reader
	Name        string
	ContentType string
}

// UploadImage загружает одно изображение (поле формы "file")
func (c *Client) UploadImage(ctx context.Context, file File) (*api.UploadResponse, error) {
	body, contentType, err := buildMultipart("file", []File{file})
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	var resp api.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload/image", contentType, body, &resp); err != nil {
		return nil, fmt.Errorf("upload image request failed: %w", err)
	}
	return &resp, nil
}

// UploadImages загружает несколько изображений (поле формы "files")
func (c *Client) UploadImages(ctx context.Context, files []File) (*api.MultipleUploadResponse, error) {
	body, contentType, err := buildMultipart("files", files)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	var resp api.MultipleUploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload/images", contentType, body, &resp); err != nil {
		return nil, fmt.Errorf("upload images request failed: %w", err)
	}
	return &resp, nil
}

func buildMultipart(field string, files []File) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		} else {
			header.Set("Content-Type", "application/octet-stream")
		}

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form part: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}

// GenerateDescription генерирует описание товара через AI
func (c *Client) GenerateDescription(ctx context.Context, req api.GenerateDescriptionRequest) (*api.AIResponse, error) {
	var resp api.AIResponse
	if err := c.post(ctx, "/ai/generate-description", req, &resp); err != nil {
		return nil, fmt.Errorf("generate description request failed: %w", err)
	}
	return &resp, nil
}

// GenerateTitle генерирует заголовок товара через AI
func (c *Client) GenerateTitle(ctx context.Context, req api.GenerateTitleRequest) (*api.AIResponse, error) {
	var resp api.AIResponse
	if err := c.post(ctx, "/ai/generate-title", req, &resp); err != nil {
		return nil, fmt.Errorf("generate title request failed: %w", err)
	}
	return &resp, nil
}

// AIStatus проверяет доступность AI сервиса
func (c *Client) AIStatus(ctx context.Context) (*api.AIStatusResponse, error) {
	var resp api.AIStatusResponse
	if err := c.post(ctx, "/ai/status", struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("ai status request failed: %w", err)
	}
	return &resp, nil
}
