package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir, "/uploads")
	ctx := context.Background()

	result, err := store.Upload(ctx, strings.NewReader("fake image bytes"), "photo.PNG", "foundry")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "/uploads/foundry/"))
	assert.True(t, strings.HasSuffix(result.PublicID, ".png"))
	assert.Equal(t, "png", result.Format)
	assert.Equal(t, int64(len("fake image bytes")), result.Size)

	saved := filepath.Join(dir, filepath.FromSlash(result.PublicID))
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, store.Delete(ctx, result.PublicID))
	_, err = os.Stat(saved)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalUploadDefaultsExtension(t *testing.T) {
	store := NewLocal(t.TempDir(), "/uploads")
	result, err := store.Upload(context.Background(), strings.NewReader("x"), "no-extension", "foundry")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.PublicID, ".jpg"))
}

func TestLocalDeleteRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir, "/uploads")

	outside := filepath.Join(dir, "..", "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))
	t.Cleanup(func() { os.Remove(outside) })

	err := store.Delete(context.Background(), "../victim.txt")
	require.Error(t, err)

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr, "file outside the upload dir must survive")
}
