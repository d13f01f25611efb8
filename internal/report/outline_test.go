package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldspan/internal/document"
	"foldspan/internal/folding"
)

func TestFoldReport_Summary(t *testing.T) {
	rep := NewFoldReport(".")
	rep.AddFile("a.md", "markdown", []folding.FoldRange{
		{StartLine: 0, EndLine: 2, Kind: folding.KindRegion},
		{StartLine: 3, EndLine: 5, Kind: folding.KindRegion},
	})
	rep.AddFile("b.go", "go", []folding.FoldRange{
		{StartLine: 1, EndLine: 4, Kind: folding.KindImports},
	})

	assert.Equal(t, 2, rep.Summary.FileCount)
	assert.Equal(t, 3, rep.Summary.RangeCount)
	assert.Equal(t, 2, rep.Summary.RangesByKind["region"])
	assert.Equal(t, 1, rep.Summary.RangesByKind["imports"])
}

func TestFoldReport_ValidatesAgainstJSONSchema(t *testing.T) {
	rep := NewFoldReport("/repo")
	rep.AddFile("msg", "git-commit", []folding.FoldRange{
		{StartLine: 2, EndLine: 5, Kind: folding.KindComment},
	})

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))

	_, currentFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	schemaPath, err := filepath.Abs(filepath.Join(filepath.Dir(currentFile), "..", "..", "docs", "fold_report.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + filepath.ToSlash(schemaPath))
	require.NoError(t, err)

	var decoded interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.NoError(t, schema.Validate(decoded))
}

func TestFoldReport_SchemaRejectsUnknownKind(t *testing.T) {
	rep := NewFoldReport("/repo")
	rep.AddFile("msg", "git-commit", []folding.FoldRange{
		{StartLine: 0, EndLine: 3, Kind: folding.RegionKind("banana")},
	})

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))

	_, currentFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	schemaPath, err := filepath.Abs(filepath.Join(filepath.Dir(currentFile), "..", "..", "docs", "fold_report.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + filepath.ToSlash(schemaPath))
	require.NoError(t, err)

	var decoded interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Error(t, schema.Validate(decoded))
}

func TestOutline(t *testing.T) {
	doc := document.FromString("## Section\nbody\n```\ncode\n```\ntail\n", document.LangMarkdown)
	ranges := []folding.FoldRange{
		{StartLine: 0, EndLine: 5, Kind: folding.KindRegion},
		{StartLine: 2, EndLine: 4, Kind: folding.KindRegion},
	}

	out := Outline(doc, ranges)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "## Section")
	assert.Contains(t, lines[0], "1-6")
	// The nested fence is indented under its section.
	assert.True(t, strings.HasPrefix(lines[1], "  "))
	assert.Contains(t, lines[1], "3-5")
}

func TestOutline_TruncatesLongFirstLines(t *testing.T) {
	long := strings.Repeat("x", 100)
	doc := document.FromString("## "+long+"\nbody\n", document.LangMarkdown)
	out := Outline(doc, []folding.FoldRange{{StartLine: 0, EndLine: 1, Kind: folding.KindRegion}})
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}
