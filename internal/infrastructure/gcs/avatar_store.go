package gcs

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/creatorlink/pkg/helpers"
)

// AvatarStore writes onboarding avatars to a GCS bucket.
type AvatarStore struct {
	client *storage.Client
	bucket string
}

func NewAvatarStore(client *storage.Client, bucket string) *AvatarStore {
	return &AvatarStore{client: client, bucket: bucket}
}

// ObjectPath is avatars/<owner>/<random><ext>; owner is a user id, never an email.
func ObjectPath(ownerID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("avatars", ownerID, uuid.NewString()+ext)
}

// Metadata tags an avatar object with its owner and the uploaded file name.
func Metadata(ownerID, filename string) map[string]string {
	return map[string]string{"owner": ownerID, "filename": path.Base(filename)}
}

// Upload streams r into the bucket and returns the public URL.
func (s *AvatarStore) Upload(ctx context.Context, ownerID string, r io.Reader, filename, contentType string) (string, error) {
	if s == nil || s.client == nil || s.bucket == "" {
		return "", errors.New("gcs not configured")
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, ObjectPath(ownerID, filename), contentType, Metadata(ownerID, filename), r)
}
