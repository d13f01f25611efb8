package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	t.Run("splits lines without a phantom trailing line", func(t *testing.T) {
		doc := FromString("a\nb\nc\n", LangMarkdown)
		require.Equal(t, 3, doc.LineCount())
		assert.Equal(t, "a", doc.LineAt(0))
		assert.Equal(t, "c", doc.LineAt(2))
	})

	t.Run("no trailing newline", func(t *testing.T) {
		doc := FromString("a\nb", "")
		assert.Equal(t, 2, doc.LineCount())
	})

	t.Run("normalizes CRLF", func(t *testing.T) {
		doc := FromString("a\r\nb\r\n", "")
		require.Equal(t, 2, doc.LineCount())
		assert.Equal(t, "a", doc.LineAt(0))
		assert.NotContains(t, doc.LineAt(0), "\r")
	})

	t.Run("empty content has zero lines", func(t *testing.T) {
		assert.Equal(t, 0, FromString("", "").LineCount())
	})

	t.Run("a blank line is still a line", func(t *testing.T) {
		doc := FromString("a\n\nb\n", "")
		require.Equal(t, 3, doc.LineCount())
		assert.Equal(t, "", doc.LineAt(1))
	})
}

func TestFromReader(t *testing.T) {
	doc, err := FromReader(strings.NewReader("x\ny\n"), LangGitCommit)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.LineCount())
	assert.Equal(t, LangGitCommit, doc.LanguageID())
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# hi\nbody\n"), 0644))

	doc, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, LangMarkdown, doc.LanguageID())
	assert.Equal(t, 2, doc.LineCount())

	_, err = FromFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"README.md":             LangMarkdown,
		"notes.MARKDOWN":        LangMarkdown,
		"main.go":               LangGo,
		".git/COMMIT_EDITMSG":   LangGitCommit,
		"MERGE_MSG":             LangGitCommit,
		"message.gitcommit":     LangGitCommit,
		"archive.tar.gz":        "",
		"Makefile":              "",
		"deep/nested/path/x.go": LangGo,
	}
	for path, want := range cases {
		assert.Equal(t, want, DetectLanguage(path), path)
	}
}
