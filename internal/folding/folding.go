package folding

import (
	"fmt"
	"sort"

	"foldspan/internal/document"
)

// Engine dispatches documents to the provider registered for their
// language id and enforces the output invariants every consumer relies
// on: two-line minimum span, in-bounds lines, non-decreasing start order.
type Engine struct {
	provider RegionProvider
	langID   string
}

// NewEngine creates an engine for a given language id.
func NewEngine(languageID string) (*Engine, error) {
	var provider RegionProvider
	switch languageID {
	case document.LangGitCommit:
		provider = &CommitMessageProvider{}
	case document.LangMarkdown:
		provider = &MarkdownProvider{}
	case document.LangGo:
		provider = &GoProvider{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", languageID)
	}
	return &Engine{provider: provider, langID: languageID}, nil
}

// Supported reports whether a language id has a registered provider.
func Supported(languageID string) bool {
	_, err := NewEngine(languageID)
	return err == nil
}

// LanguageID reports the language this engine folds.
func (e *Engine) LanguageID() string { return e.langID }

// Fold computes the document's fold ranges.
func (e *Engine) Fold(doc document.Document) []FoldRange {
	return normalize(e.provider.FoldRanges(doc), doc.LineCount())
}

// FoldFile loads a single file and folds it with this engine's provider,
// regardless of the file's own detected language.
func (e *Engine) FoldFile(path string) ([]FoldRange, error) {
	doc, err := document.FromFile(path)
	if err != nil {
		return nil, err
	}
	return e.Fold(doc), nil
}

// normalize applies the global output contract: ranges spanning fewer than
// two lines or reaching outside the document are dropped, the rest is
// ordered by start line, and exact duplicate spans collapse to their first
// emission (a comment block and a section closure can land on the same
// span when a header directly follows a leading comment block).
func normalize(ranges []FoldRange, lineCount int) []FoldRange {
	var kept []FoldRange
	for _, r := range ranges {
		if r.EndLine <= r.StartLine {
			continue
		}
		if r.StartLine < 0 || r.EndLine > lineCount-1 {
			continue
		}
		kept = append(kept, r)
	}
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].StartLine < kept[b].StartLine
	})

	var out []FoldRange
	for _, r := range kept {
		if n := len(out); n > 0 && out[n-1].StartLine == r.StartLine && out[n-1].EndLine == r.EndLine {
			continue
		}
		out = append(out, r)
	}
	return out
}
