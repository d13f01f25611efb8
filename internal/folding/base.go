package folding

import "foldspan/internal/document"

// RegionKind tags what a fold range covers.
type RegionKind string

const (
	// KindRegion is a paragraph or header-delimited section.
	KindRegion RegionKind = "region"
	// KindComment is a contiguous run of comment lines.
	KindComment RegionKind = "comment"
	// KindImports is an import declaration block (syntax providers only).
	KindImports RegionKind = "imports"
)

// FoldRange is one collapsible span of a document. Lines are 0-based and
// inclusive on both ends. Every emitted range satisfies
// 0 <= StartLine < EndLine < lineCount.
type FoldRange struct {
	StartLine int        `json:"start_line"`
	EndLine   int        `json:"end_line"`
	Kind      RegionKind `json:"kind"`
}

// RegionProvider computes the fold ranges of a single document. Providers
// are stateless across calls: all classification state lives on the stack
// of one FoldRanges invocation, so a provider is safe for concurrent use.
type RegionProvider interface {
	// LanguageID reports the language this provider handles.
	LanguageID() string

	// FoldRanges returns the document's collapsible spans in
	// non-decreasing StartLine order. It is total: any document,
	// including an empty one, yields a (possibly empty) slice.
	FoldRanges(doc document.Document) []FoldRange
}
