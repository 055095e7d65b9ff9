// Package scan lists the photos a directory offers for stamping.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultOutputDirName is the subfolder stamped copies land in when no
// explicit output directory is configured.
const DefaultOutputDirName = "output"

// imageExtensions are the recognized photo formats, matched
// case-insensitively on the filename extension.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether the path names a recognized photo format.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Images lists the photo files directly inside dir, sorted by name.
// Subdirectories are not descended into; the output folder of a previous
// run therefore never feeds back into the next one.
func Images(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		if !IsImage(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// EnsureOutputDir resolves and creates the output directory for an input
// directory. An empty override places it at dir/output.
func EnsureOutputDir(dir, override string) (string, error) {
	out := override
	if out == "" {
		out = filepath.Join(dir, DefaultOutputDirName)
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	return out, nil
}
