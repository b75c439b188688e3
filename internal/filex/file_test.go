package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "band_1.jpg", SanitizeFilename("band_1.jpg"))
	assert.Equal(t, "cohibarobusto.jpg", SanitizeFilename("cohiba robusto!.jpg"))
	assert.Equal(t, "", SanitizeFilename("фото"))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queue.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`[]`), 0o660))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	// overwrite leaves no temp files behind
	require.NoError(t, WriteFileAtomic(path, []byte(`[1]`), 0o660))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCacheImage(t *testing.T) {
	dataDir := t.TempDir()

	src := filepath.Join(t.TempDir(), "picked image!.jpg")
	require.NoError(t, os.WriteFile(src, []byte("jpegbytes"), 0o660))

	cached, err := CacheImage(dataDir, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "images", "pickedimage.jpg"), cached)

	data, err := os.ReadFile(cached)
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(data))

	// source can disappear, cached copy survives
	require.NoError(t, os.Remove(src))
	_, err = os.Stat(cached)
	assert.NoError(t, err)
}

func TestCacheImage_MissingSource(t *testing.T) {
	_, err := CacheImage(t.TempDir(), filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
}
