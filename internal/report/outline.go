package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"foldspan/internal/document"
	"foldspan/internal/folding"
)

// FileEntry is one file's contribution to a FoldReport.
type FileEntry struct {
	Path     string              `json:"path"`
	Language string              `json:"language"`
	Ranges   []folding.FoldRange `json:"ranges"`
}

type Summary struct {
	FileCount    int            `json:"file_count"`
	RangeCount   int            `json:"range_count"`
	RangesByKind map[string]int `json:"ranges_by_kind,omitempty"`
}

// FoldReport is the machine-readable result of a scan. Its shape is
// pinned by docs/fold_report.schema.json.
type FoldReport struct {
	Version     string      `json:"version"`
	GeneratedAt string      `json:"generated_at"`
	Root        string      `json:"root"`
	Files       []FileEntry `json:"files"`
	Summary     Summary     `json:"summary"`
}

func NewFoldReport(root string) *FoldReport {
	return &FoldReport{
		Version:     "v1",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Root:        root,
	}
}

// AddFile records one folded file and updates the summary counters.
func (r *FoldReport) AddFile(path, language string, ranges []folding.FoldRange) {
	r.Files = append(r.Files, FileEntry{Path: path, Language: language, Ranges: ranges})
	r.Summary.FileCount++
	r.Summary.RangeCount += len(ranges)
	if r.Summary.RangesByKind == nil {
		r.Summary.RangesByKind = make(map[string]int)
	}
	for _, fr := range ranges {
		r.Summary.RangesByKind[string(fr.Kind)]++
	}
}

// WriteJSON emits the report as indented JSON.
func (r *FoldReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Outline renders fold ranges as an indented text outline. Nesting depth
// follows range containment; each entry shows the span and the first line
// of the folded region.
func Outline(doc document.Document, ranges []folding.FoldRange) string {
	var sb strings.Builder
	var stack []folding.FoldRange

	for _, r := range ranges {
		for len(stack) > 0 && stack[len(stack)-1].EndLine < r.StartLine {
			stack = stack[:len(stack)-1]
		}
		indent := strings.Repeat("  ", len(stack))
		fmt.Fprintf(&sb, "%s%-8s %4d-%-4d %s\n",
			indent, r.Kind, r.StartLine+1, r.EndLine+1, firstLine(doc, r))
		stack = append(stack, r)
	}
	return sb.String()
}

func firstLine(doc document.Document, r folding.FoldRange) string {
	if r.StartLine < 0 || r.StartLine >= doc.LineCount() {
		return ""
	}
	text := strings.TrimSpace(doc.LineAt(r.StartLine))
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	return text
}
