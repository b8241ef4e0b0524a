package filesystem

import (
	"os"
)

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	// os.Stat returns os.FileInfo which implements fs.FileInfo
	return os.Stat(path)
}

// Verify OSFileSystem implements FileSystemProvider at compile time
var _ FileSystemProvider = (*OSFileSystem)(nil)
