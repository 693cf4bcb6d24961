package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileReader reads manifest files and caches their contents until the
// file changes on disk
type FileReader struct {
	cache *FileCache[[]byte]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{cache: NewFileCache[[]byte]()}
}

// ReadFile returns the contents of filePath. The returned slice is shared
// with the cache and must not be modified.
func (fr *FileReader) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := CleanPath(filePath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", cleanPath)
	}

	if cached, exists := fr.cache.Get(cleanPath); exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	// a file that vanished between read and stat is simply not cached
	_ = fr.cache.Put(cleanPath, content)
	return content, nil
}

// WriteFile writes content to dir/name, creating dir when needed
func WriteFile(dir, name string, content []byte) (string, error) {
	cleanDir, err := CleanPath(dir)
	if err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name '%s'", name)
	}

	if err := os.MkdirAll(cleanDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", cleanDir, err)
	}

	path := filepath.Join(cleanDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", name, err)
	}
	return path, nil
}

// CleanPath cleans a path and rejects traversal below its starting point.
// Leading ".." segments of relative paths are allowed.
func CleanPath(filePath string) (string, error) {
	if err := NotEmpty("file path")(filePath); err != nil {
		return "", err
	}

	cleanPath := filepath.Clean(filePath)
	if strings.Contains(cleanPath, "..") && !strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
	}
	return cleanPath, nil
}
