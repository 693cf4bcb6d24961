package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cleaner handles cleaning up generated fragment files
type Cleaner struct {
	removed []string
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Removed returns the files deleted by the last clean
func (c *Cleaner) Removed() []string {
	return c.removed
}

// CleanGeneratedFiles removes fragment files from the specified directories.
// Only .txt files that start with the fragment marker are touched.
func (c *Cleaner) CleanGeneratedFiles(directories []string) error {
	c.removed = nil

	for _, dir := range directories {
		err := c.cleanDirectory(dir)
		if err != nil {
			return fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return nil
}

// cleanDirectory handles the "dir/..." pattern
func (c *Cleaner) cleanDirectory(dir string) error {
	if strings.HasSuffix(dir, "/...") {
		baseDir := strings.TrimSuffix(dir, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		return c.cleanRecursively(baseDir)
	}

	return c.cleanSingleDirectory(dir)
}

func (c *Cleaner) cleanRecursively(baseDir string) error {
	return filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// unreadable directories are skipped
			return nil
		}
		if info.IsDir() {
			return c.cleanSingleDirectory(path)
		}
		return nil
	})
}

func (c *Cleaner) cleanSingleDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		generated, err := isFragmentFile(path)
		if err != nil {
			return err
		}
		if !generated {
			continue
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", path, err)
		}
		c.removed = append(c.removed, path)
	}
	return nil
}

func isFragmentFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to check file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.HasPrefix(scanner.Text(), fragmentMarker), nil
}
