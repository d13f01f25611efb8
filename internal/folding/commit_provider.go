package folding

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"foldspan/internal/document"
)

// CommitMessageProvider classifies commit-message-like text: prose
// paragraphs separated by blank lines, markdown headers starting new
// sections, and `#`-prefixed comment lines (usually appended by tooling)
// grouped into comment blocks.
type CommitMessageProvider struct{}

func (p *CommitMessageProvider) LanguageID() string { return document.LangGitCommit }

// scanState is the per-call tracking for one classification pass. It is
// created fresh on every call and never retained.
type scanState struct {
	sectionStart int
	inComment    bool
	commentStart int

	// sawBoundary records that at least one structural line (comment,
	// header, blank) was seen. A document with no boundaries at all is
	// one unbroken paragraph and yields no folds.
	sawBoundary bool
}

// FoldRanges runs a single left-to-right pass over the document.
//
// Rule order per line: a comment line consumes the line outright; any
// other line first closes an open comment block, then is checked against
// the header predicate, then the blank-line predicate. The header check is
// only reachable for lines the comment branch did not consume.
func (p *CommitMessageProvider) FoldRanges(doc document.Document) []FoldRange {
	var ranges []FoldRange
	lineCount := doc.LineCount()

	st := scanState{sectionStart: 0, inComment: false, commentStart: -1}

	for i := 0; i < lineCount; i++ {
		text := doc.LineAt(i)

		// 1. Comment line: open a block if needed, consume the line.
		if isCommentLine(text) {
			if !st.inComment {
				st.inComment = true
				st.commentStart = i
			}
			st.sawBoundary = true
			continue
		}

		// 2. Any other line closes an open comment block before the
		// remaining rules see it.
		if st.inComment {
			if i > st.commentStart+1 {
				ranges = appendRange(ranges, st.commentStart, i-1, KindComment)
			}
			st.inComment = false
		}

		// 3. Header starts a new section, closing the pending one.
		// No minimum-span check here, unlike rule 4; sub-two-line
		// spans are dropped at emission either way.
		if isHeaderLine(text) {
			if i > st.sectionStart {
				ranges = appendRange(ranges, st.sectionStart, i-1, KindRegion)
			}
			st.sectionStart = i
			st.sawBoundary = true
			continue
		}

		// 4. Blank line ends the pending section.
		if strings.TrimSpace(text) == "" {
			if i > st.sectionStart+1 {
				ranges = appendRange(ranges, st.sectionStart, i-1, KindRegion)
			}
			st.sectionStart = i + 1
			st.sawBoundary = true
		}
	}

	// End-of-document flush. A still-open comment block wins over the
	// pending section; the two never both flush.
	if st.inComment {
		if st.commentStart < lineCount-1 {
			ranges = appendRange(ranges, st.commentStart, lineCount-1, KindComment)
		}
	} else if st.sawBoundary && st.sectionStart < lineCount-1 {
		ranges = appendRange(ranges, st.sectionStart, lineCount-1, KindRegion)
	}

	return ranges
}

// isCommentLine matches tooling comment lines: a single leading `#`. A
// `##` run is markdown, left for the header predicate below.
func isCommentLine(text string) bool {
	return strings.HasPrefix(text, "#") && !strings.HasPrefix(text, "##")
}

// isHeaderLine matches one or more `#` characters followed by at least one
// whitespace character.
func isHeaderLine(text string) bool {
	n := 0
	for n < len(text) && text[n] == '#' {
		n++
	}
	if n == 0 || n == len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[n:])
	return unicode.IsSpace(r)
}

// appendRange drops spans that cover fewer than two lines; a single-line
// fold carries nothing useful to collapse.
func appendRange(ranges []FoldRange, start, end int, kind RegionKind) []FoldRange {
	if end <= start {
		return ranges
	}
	return append(ranges, FoldRange{StartLine: start, EndLine: end, Kind: kind})
}
