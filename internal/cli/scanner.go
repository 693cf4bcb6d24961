package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/utils"
)

var manifestExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ManifestScanner expands command line arguments into manifest files
type ManifestScanner struct{}

// NewManifestScanner creates a new manifest scanner
func NewManifestScanner() *ManifestScanner {
	return &ManifestScanner{}
}

// ScanManifests resolves each argument to manifest files. A file is taken
// as is, a directory contributes its manifests, and "dir/..." walks dir
// recursively. Hidden directories are skipped. The result is sorted and
// free of duplicates.
func (s *ManifestScanner) ScanManifests(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var manifests []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			manifests = append(manifests, path)
		}
	}

	for _, arg := range args {
		recursive := strings.HasSuffix(arg, "/...")
		root := strings.TrimSuffix(arg, "/...")
		if root == "" {
			root = "."
		}

		cleanPath, err := utils.CleanPath(root)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", root, err)
		}

		info, err := os.Stat(cleanPath)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", cleanPath, err).
				WithSuggestion("check that the manifest path exists")
		}

		switch {
		case !info.IsDir():
			if recursive {
				return nil, errors.WrapFileSystemError("scan", arg, fmt.Errorf("'%s' is not a directory", root))
			}
			add(cleanPath)
		case recursive:
			err = filepath.WalkDir(cleanPath, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if path != cleanPath && strings.HasPrefix(d.Name(), ".") {
						return filepath.SkipDir
					}
					return nil
				}
				if isManifest(d.Name()) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", cleanPath, err)
			}
		default:
			entries, err := os.ReadDir(cleanPath)
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", cleanPath, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && isManifest(entry.Name()) {
					add(filepath.Join(cleanPath, entry.Name()))
				}
			}
		}
	}

	sort.Strings(manifests)
	return manifests, nil
}

func isManifest(name string) bool {
	return manifestExtensions[strings.ToLower(filepath.Ext(name))]
}
