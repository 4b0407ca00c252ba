package ports

import "context"

// UploadStore keeps shopper photos and returns a reference usable as an image source.
type UploadStore interface {
	Put(ctx context.Context, ownerID, filename, contentType string, data []byte) (string, error)
}
