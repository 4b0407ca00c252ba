package memory

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

var _ ports.UploadStore = (*UploadStore)(nil)

// UploadStore encodes photos as data: URLs, which the image-generation
// collaborator accepts as inline image input. Nothing is retained; the bytes
// live only in the session's configuration and go away with it.
type UploadStore struct{}

func NewUploadStore() *UploadStore {
	return &UploadStore{}
}

func (s *UploadStore) Put(_ context.Context, _, _, contentType string, data []byte) (string, error) {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
