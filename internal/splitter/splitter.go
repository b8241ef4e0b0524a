package splitter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vvka-141/pgsqlclient/internal/files/filesystem"
	"github.com/vvka-141/pgsqlclient/pkg/pgsqlclient"
)

var statementPattern = regexp.MustCompile(`[^;]*;`)

// Split returns the statements of text in source order.
// The result is empty, not nil, when text contains no semicolon.
func Split(text string) []string {
	matches := statementPattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// Trailing returns the text following the last semicolon, which Split drops.
func Trailing(text string) string {
	idx := strings.LastIndex(text, pgsqlclient.StatementTerminator)
	return text[idx+1:]
}

// SplitFile reads the file at path and splits its content.
// Read failures wrap pgsqlclient.ErrFileAccess.
func SplitFile(provider filesystem.FileSystemProvider, path string) ([]string, error) {
	text, err := ReadScript(provider, path)
	if err != nil {
		return nil, err
	}
	return Split(text), nil
}

// ReadScript reads the full text of a script file.
// Read failures wrap pgsqlclient.ErrFileAccess.
func ReadScript(provider filesystem.FileSystemProvider, path string) (string, error) {
	text, err := filesystem.ReadText(provider, path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", pgsqlclient.ErrFileAccess, err)
	}
	return text, nil
}
