// Package filex contains filesystem helpers: the app-private data directory,
// crash-safe writes, and the local image cache for captured band photos.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips characters that are unsafe in file names.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "")
}

// EnsureSubDir creates (if needed) and returns a subdirectory under base.
// When base is empty the current working directory is used.
func EnsureSubDir(base string, dirName string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	dir := filepath.Join(base, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// WriteFileAtomic writes data to a temp file in the target directory and
// renames it into place, so readers never observe a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp: %w", err)
	}
	return nil
}

// CacheImage copies a just-captured image from its transient picker location
// into the app-private images directory under dataDir, so it survives process
// restarts before any remote upload completes. It returns the persistent path.
// An existing cached copy with the same name is replaced.
func CacheImage(dataDir string, srcPath string) (string, error) {
	dir, err := EnsureSubDir(dataDir, "images")
	if err != nil {
		return "", err
	}

	name := SanitizeFilename(filepath.Base(srcPath))
	if name == "" {
		return "", fmt.Errorf("image path %q yields an empty file name", srcPath)
	}
	dst := filepath.Join(dir, name)

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open source image: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read source image: %w", err)
	}

	if err := WriteFileAtomic(dst, data, 0o660); err != nil {
		return "", fmt.Errorf("cache image: %w", err)
	}

	return dst, nil
}
