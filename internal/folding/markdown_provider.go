package folding

import (
	"sort"
	"strings"

	"foldspan/internal/document"
)

// MarkdownProvider folds markdown documents along two patterns: ATX
// heading sections and fenced code blocks. Heading hierarchy depth carries
// no meaning here; every heading of any level ends the previous section.
type MarkdownProvider struct{}

func (p *MarkdownProvider) LanguageID() string { return document.LangMarkdown }

// fenceState tracks an open ``` or ~~~ code fence across lines.
type fenceState struct {
	open      bool
	char      byte
	length    int
	startLine int
}

// scan updates the fence state for one trimmed line. It returns the line
// index the fence opened on when this line closes a fence, and -1
// otherwise. Lines inside a fence are consumed so heading detection never
// sees them.
func (f *fenceState) scan(trimmed string, i int) (closedFrom int, consumed bool) {
	if !f.open {
		if len(trimmed) >= 3 && (trimmed[0] == '`' || trimmed[0] == '~') {
			run := countLeading(trimmed, trimmed[0])
			if run >= 3 {
				f.open = true
				f.char = trimmed[0]
				f.length = run
				f.startLine = i
				return -1, true
			}
		}
		return -1, false
	}

	// Closing fence: at least as long as the opening run, nothing after.
	if len(trimmed) > 0 && trimmed[0] == f.char {
		run := countLeading(trimmed, f.char)
		if run >= f.length && run == len(trimmed) {
			from := f.startLine
			f.open = false
			return from, true
		}
	}
	return -1, true
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// FoldRanges scans once, closing heading sections on the next heading and
// fences on their closing line, then orders the result by start line.
func (p *MarkdownProvider) FoldRanges(doc document.Document) []FoldRange {
	var ranges []FoldRange
	lineCount := doc.LineCount()

	var fence fenceState
	sectionStart := -1

	for i := 0; i < lineCount; i++ {
		text := doc.LineAt(i)
		trimmed := strings.TrimSpace(text)

		if from, consumed := fence.scan(trimmed, i); consumed {
			if from >= 0 {
				ranges = appendRange(ranges, from, i, KindRegion)
			}
			continue
		}

		// ATX headings tolerate up to three leading spaces.
		if isHeaderLine(strings.TrimLeft(text, " ")) {
			if sectionStart >= 0 {
				ranges = appendRange(ranges, sectionStart, i-1, KindRegion)
			}
			sectionStart = i
		}
	}

	// A fence left open at end of input folds to the last line.
	if fence.open {
		ranges = appendRange(ranges, fence.startLine, lineCount-1, KindRegion)
	}
	if sectionStart >= 0 {
		ranges = appendRange(ranges, sectionStart, lineCount-1, KindRegion)
	}

	sort.SliceStable(ranges, func(a, b int) bool {
		return ranges[a].StartLine < ranges[b].StartLine
	})
	return ranges
}
