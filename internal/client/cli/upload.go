package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/validation"
)

// imageFile открытый файл изображения, прошедший локальную проверку
type imageFile struct {
	file *os.File
	api.File
}

// openImage открывает файл и проверяет тип и размер до отправки
func openImage(path string) (*imageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	contentType, err := detectContentType(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	name := filepath.Base(path)
	if err := validation.ValidateImage(name, contentType, info.Size()); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &imageFile{
		file: f,
		File: api.File{Content: f, Name: name, ContentType: contentType},
	}, nil
}

// detectContentType определяет тип по содержимому, затем по расширению
func detectContentType(f *os.File, path string) (string, error) {
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind %s: %w", path, err)
	}

	contentType := http.DetectContentType(head[:n])
	if strings.HasPrefix(contentType, "image/") {
		return contentType, nil
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		contentType, _, _ = strings.Cut(byExt, ";")
	}
	return contentType, nil
}

func (c *Cli) runUpload(ctx context.Context, paths []string) error {
	if err := c.requireAuth(ctx, "upload"); err != nil {
		return err
	}
	if err := validation.ValidateImageCount(len(paths)); err != nil {
		return err
	}

	images := make([]*imageFile, 0, len(paths))
	defer func() {
		for _, img := range images {
			_ = img.file.Close()
		}
	}()
	for _, path := range paths {
		img, err := openImage(path)
		if err != nil {
			return err
		}
		images = append(images, img)
	}

	if len(images) == 1 {
		resp, err := c.apiClient.UploadImage(ctx, images[0].File)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Uploaded: %s\n", resp.URL)
		return nil
	}

	files := make([]api.File, 0, len(images))
	for _, img := range images {
		files = append(files, img.File)
	}
	resp, err := c.apiClient.UploadImages(ctx, files)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Uploaded %d images:\n", resp.Count)
	for _, u := range resp.URLs {
		c.io.Printf("  %s\n", u)
	}
	return nil
}
