package folding

import (
	"context"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"foldspan/internal/document"
)

// GoProvider computes syntax-aware folds for Go source: function and
// method declarations, import blocks, and contiguous comment runs.
type GoProvider struct{}

func (p *GoProvider) LanguageID() string { return document.LangGo }

const goFoldQuery = `
	(function_declaration) @decl
	(method_declaration) @decl
	(import_declaration) @imports
	(comment) @comment
`

// FoldRanges parses the document and maps the query captures to fold
// ranges. Parse failures yield no folds rather than an error; folding is
// best-effort over whatever source the host hands us.
func (p *GoProvider) FoldRanges(doc document.Document) []FoldRange {
	lineCount := doc.LineCount()
	if lineCount == 0 {
		return nil
	}

	var sb strings.Builder
	for i := 0; i < lineCount; i++ {
		sb.WriteString(doc.LineAt(i))
		sb.WriteByte('\n')
	}
	source := []byte(sb.String())

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil
	}

	query, err := sitter.NewQuery([]byte(goFoldQuery), golang.GetLanguage())
	if err != nil {
		return nil
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	var ranges []FoldRange
	runStart, runEnd := -1, -1

	flushRun := func() {
		if runStart >= 0 {
			ranges = appendRange(ranges, runStart, runEnd, KindComment)
			runStart, runEnd = -1, -1
		}
	}

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			start := int(c.Node.StartPoint().Row)
			end := int(c.Node.EndPoint().Row)
			if end > lineCount-1 {
				end = lineCount - 1
			}

			switch query.CaptureNameForId(c.Index) {
			case "decl":
				ranges = appendRange(ranges, start, end, KindRegion)
			case "imports":
				ranges = appendRange(ranges, start, end, KindImports)
			case "comment":
				// Line comments arrive one node per line; merge
				// adjacent rows into one run.
				if runStart >= 0 && start == runEnd+1 {
					runEnd = end
					continue
				}
				flushRun()
				runStart, runEnd = start, end
			}
		}
	}
	flushRun()

	sort.SliceStable(ranges, func(a, b int) bool {
		return ranges[a].StartLine < ranges[b].StartLine
	})
	return ranges
}
