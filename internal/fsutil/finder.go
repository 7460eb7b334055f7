// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths in
// lexical order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Entry is a file found directly inside a directory.
type Entry struct {
	Name string // file name without the extension
	Path string
}

// ListByExtension returns the regular files directly inside dir whose name
// ends with extension, sorted by name. Subdirectories are not searched.
func ListByExtension(dir string, extension string) ([]Entry, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var out []Entry
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), extension) {
			continue
		}
		out = append(out, Entry{
			Name: strings.TrimSuffix(item.Name(), extension),
			Path: filepath.Join(dir, item.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
