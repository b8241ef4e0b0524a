package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
	readErr error
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Relative paths are resolved against the root given to NewMemoryFileSystem.
type MemoryFileSystem struct {
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.AddDir(root)
	return mfs
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	absPath := mfs.resolve(filePath)
	mfs.entries[absPath] = &memoryEntry{
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// AddDir adds a directory entry.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.resolve(dirPath)
	mfs.entries[absPath] = &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// FailReads makes every subsequent ReadFile of filePath return err while Stat
// keeps succeeding, as for a file whose permissions deny reading.
func (mfs *MemoryFileSystem) FailReads(filePath string, err error) {
	if entry, ok := mfs.entries[mfs.resolve(filePath)]; ok {
		entry.readErr = err
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == filePath {
		return
	}
	if _, exists := mfs.entries[dir]; exists {
		return
	}

	mfs.entries[dir] = &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(dir),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(dir)
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	// Normalize to forward slashes (virtual filesystem convention)
	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	entry, exists := mfs.entries[mfs.resolve(filePath)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if entry.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if entry.readErr != nil {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: entry.readErr}
	}
	return entry.content, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	entry, exists := mfs.entries[mfs.resolve(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return entry.info, nil
}

// Verify MemoryFileSystem implements FileSystemProvider at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
