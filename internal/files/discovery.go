package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "tableqc/internal/errors"
)

// tabularExtensions are the input file types the tool processes.
var tabularExtensions = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
	".xls":  {},
}

// FileInfo represents information about a discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// IsTabular reports whether the path has a supported tabular extension.
func IsTabular(path string) bool {
	_, ok := tabularExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Discover resolves an input path to the list of files to process: a single
// file yields itself, a directory yields every tabular file directly inside
// it, sorted by name.
func Discover(input string) ([]FileInfo, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, apperrors.FileNotFound(input, err)
	}

	if !info.IsDir() {
		if !IsTabular(input) {
			return nil, apperrors.UnsupportedFormat(filepath.Ext(input))
		}
		return []FileInfo{{
			Path:    input,
			Name:    filepath.Base(input),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", input, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsTabular(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(input, entry.Name()),
			Name:    entry.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// EnsureOutputDir creates the output directory if it does not exist.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
