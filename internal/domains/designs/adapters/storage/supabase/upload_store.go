package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
	supabasego "github.com/supabase-community/supabase-go"

	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
)

var _ ports.UploadStore = (*UploadStore)(nil)

// objectUploader is the subset of the storage-go client the store needs.
type objectUploader interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage.FileOptions) (storage.FileUploadResponse, error)
}

// UploadStore writes shopper photos to a Supabase storage bucket and returns their public URLs.
type UploadStore struct {
	client  objectUploader
	bucket  string
	baseURL string
	newID   func() string
}

// NewUploadStore connects to the Supabase project at projectURL with a service key.
func NewUploadStore(projectURL, serviceKey, bucket string) (*UploadStore, error) {
	if strings.TrimSpace(projectURL) == "" || strings.TrimSpace(serviceKey) == "" || strings.TrimSpace(bucket) == "" {
		return nil, errors.New("supabase url, service key and bucket are required")
	}
	client, err := supabasego.NewClient(projectURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase client: %w", err)
	}
	return newUploadStore(client.Storage, projectURL, bucket), nil
}

func newUploadStore(client objectUploader, projectURL, bucket string) *UploadStore {
	return &UploadStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(projectURL, "/"),
		newID:   uuid.NewString,
	}
}

// Put stores data under designs/{owner}/{random id}{ext}. Object names are never reused.
func (s *UploadStore) Put(_ context.Context, ownerID, filename, contentType string, data []byte) (string, error) {
	if s == nil || s.client == nil {
		return "", errors.New("supabase upload store not configured")
	}
	objectPath := fmt.Sprintf("designs/%s/%s%s", ownerID, s.newID(), strings.ToLower(path.Ext(filename)))
	upsert := false
	if _, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return s.PublicURL(objectPath), nil
}

// PublicURL builds the public object URL for a path in the bucket.
func (s *UploadStore) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}
