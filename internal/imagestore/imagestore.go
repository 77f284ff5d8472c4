// Package imagestore abstracts the image hosting collaborator: Cloudinary in
// production, local disk when no credentials are configured.
package imagestore

import (
	"context"
	"io"
)

// UploadResult describes a durably stored image.
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
	Size     int64
}

// Store accepts an uploaded image and returns a durable URL plus metadata.
type Store interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
