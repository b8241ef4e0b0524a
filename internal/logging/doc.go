// Package logging provides concrete implementations of the pgsqlclient.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed diagnostic lines to stderr (or any io.Writer)
//   - NullLogger: Discards all messages (useful for testing)
//
// Diagnostics are kept apart from the script report, which goes to stdout.
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
