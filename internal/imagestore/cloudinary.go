package imagestore

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (s *Cloudinary) Upload(ctx context.Context, r io.Reader, filename, folder string) (*UploadResult, error) {
	// Convert to webp for better compression, as the frontend expects.
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		Format:       "webp",
		ResourceType: "image",
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Format:   result.Format,
		Size:     int64(result.Bytes),
	}, nil
}

func (s *Cloudinary) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	return err
}
