// Package filesystem provides the file access abstraction used to validate and
// read script files.
//
// Key interfaces:
//   - FileSystemProvider: reads whole files and reports file metadata
//   - FileInfo: file metadata, an alias of fs.FileInfo
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for testing
package filesystem
