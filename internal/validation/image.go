package validation

import (
	"fmt"
	"slices"
)

const (
	// MaxImageSize максимальный размер изображения: 5MB
	MaxImageSize = 5 * 1024 * 1024
	// MaxImagesPerUpload сколько файлов можно загрузить за раз
	MaxImagesPerUpload = 5
)

var imageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

// ValidateImage проверяет тип и размер файла перед загрузкой
func ValidateImage(name, contentType string, size int64) error {
	if !slices.Contains(imageTypes, contentType) {
		return fieldError("file", fmt.Sprintf("%s is not a valid image, only JPG, PNG, GIF and WebP are allowed", name))
	}
	if size > MaxImageSize {
		return fieldError("file", fmt.Sprintf("%s is too large, the maximum size is 5MB", name))
	}
	return nil
}

// ValidateImageCount проверяет количество файлов для множественной загрузки
func ValidateImageCount(n int) error {
	if n == 0 {
		return fieldError("files", "no files selected")
	}
	if n > MaxImagesPerUpload {
		return fieldError("files", fmt.Sprintf("at most %d images can be uploaded at once", MaxImagesPerUpload))
	}
	return nil
}
