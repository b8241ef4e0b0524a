package filesystem

import (
	"fmt"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider gives read access to script files.
type FileSystemProvider interface {
	// ReadFile reads the entire file at the given path.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}

// IsRegularFile reports whether path exists and is a regular file.
// Directories and unreadable paths are not script files.
func IsRegularFile(provider FileSystemProvider, path string) bool {
	info, err := provider.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ReadText reads the file at path as text.
func ReadText(provider FileSystemProvider, path string) (string, error) {
	data, err := provider.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
