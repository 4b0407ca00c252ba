package domain

import (
	"errors"
	"fmt"
	"strings"
)

// MaxUploadBytes caps a shopper photo.
const MaxUploadBytes = 10 << 20

var (
	ErrEmptyUpload          = errors.New("uploaded file is empty")
	ErrUploadTooLarge       = errors.New("uploaded file is too large")
	ErrUnsupportedImageType = errors.New("uploaded file is not an image")
)

// ValidateUpload checks a shopper photo before it is stored.
func ValidateUpload(contentType string, size int) error {
	if size == 0 {
		return ErrEmptyUpload
	}
	if size > MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes", ErrUploadTooLarge, size)
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return fmt.Errorf("%w: %q", ErrUnsupportedImageType, contentType)
	}
	return nil
}
