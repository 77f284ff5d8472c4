package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local saves images under a base directory served as static files. Used when
// no Cloudinary credentials are configured, mostly for development.
type Local struct {
	baseDir   string
	urlPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{
		baseDir:   baseDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (s *Local) Upload(ctx context.Context, r io.Reader, filename, folder string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	name := uuid.NewString() + ext
	publicID := filepath.ToSlash(filepath.Join(folder, name))

	destination := filepath.Join(s.baseDir, folder, name)
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return nil, err
	}

	out, err := os.Create(destination)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	size, err := io.Copy(out, r)
	if err != nil {
		os.Remove(destination)
		return nil, err
	}

	return &UploadResult{
		URL:      s.urlPrefix + "/" + publicID,
		PublicID: publicID,
		Format:   strings.TrimPrefix(ext, "."),
		Size:     size,
	}, nil
}

func (s *Local) Delete(ctx context.Context, publicID string) error {
	// Reject anything that would escape the upload directory.
	cleaned := filepath.Clean(filepath.FromSlash(publicID))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid public id: %q", publicID)
	}
	return os.Remove(filepath.Join(s.baseDir, cleaned))
}
