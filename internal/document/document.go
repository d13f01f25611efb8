package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Document is the read-only line view the folding engine consumes.
// Implementations expose a dense, 0-based index space.
type Document interface {
	LineCount() int
	LineAt(i int) string
	LanguageID() string
}

// InMemoryDocument holds a full line snapshot. It is immutable after
// construction, so one instance may be shared between concurrent folds.
type InMemoryDocument struct {
	lines    []string
	language string
}

// NewInMemoryDocument wraps an already-split line slice.
func NewInMemoryDocument(lines []string, language string) *InMemoryDocument {
	return &InMemoryDocument{lines: lines, language: language}
}

// FromString splits text into lines. CRLF endings are normalized and a
// trailing newline does not produce a phantom empty last line, matching
// how editors count lines.
func FromString(text, language string) *InMemoryDocument {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}
	return &InMemoryDocument{lines: lines, language: language}
}

// FromReader reads the full content and splits it into lines.
func FromReader(r io.Reader, language string) (*InMemoryDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return FromString(string(data), language), nil
}

// FromFile loads a file and detects its language from the file name.
func FromFile(path string) (*InMemoryDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return FromString(string(data), DetectLanguage(path)), nil
}

func (d *InMemoryDocument) LineCount() int { return len(d.lines) }

func (d *InMemoryDocument) LineAt(i int) string { return d.lines[i] }

func (d *InMemoryDocument) LanguageID() string { return d.language }

// Lines returns the underlying snapshot. Callers must not mutate it.
func (d *InMemoryDocument) Lines() []string { return d.lines }

// DetectLanguage maps a file name to a language id. Unknown files map to
// the empty string, which the engine rejects.
func DetectLanguage(path string) string {
	base := filepath.Base(path)
	switch base {
	case "COMMIT_EDITMSG", "MERGE_MSG", "SQUASH_MSG", "TAG_EDITMSG":
		return LangGitCommit
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".gitcommit":
		return LangGitCommit
	case ".md", ".markdown":
		return LangMarkdown
	case ".go":
		return LangGo
	}
	return ""
}

// Language ids understood by the folding engine.
const (
	LangGitCommit = "git-commit"
	LangMarkdown  = "markdown"
	LangGo        = "go"
)
