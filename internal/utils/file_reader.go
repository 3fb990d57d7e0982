package utils

import (
	"os"
	"path/filepath"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

// FileReader reads files through a modification-aware cache
type FileReader struct {
	contents *FileCache[string]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contents: NewFileCache[string](),
	}
}

// ReadFile reads a file and returns its contents as a string with caching
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	if filePath == "" {
		return "", axonerrors.New(axonerrors.FileSystemErrorCode, "file path cannot be empty")
	}
	cleanPath := filepath.Clean(filePath)

	if cached, ok := fr.contents.Get(cleanPath); ok {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", axonerrors.WrapFileSystemError("read", cleanPath, err)
	}

	contentStr := string(content)
	_ = fr.contents.Set(cleanPath, contentStr)

	return contentStr, nil
}

// Exists reports whether path names an existing regular file
func (fr *FileReader) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	fr.contents.Delete(filepath.Clean(filePath))
}

// ClearCache clears all cached files
func (fr *FileReader) ClearCache() {
	fr.contents.Clear()
}

// CachedFiles returns the number of cached files
func (fr *FileReader) CachedFiles() int {
	return fr.contents.Size()
}
