// Package marker projects located diagnostic records onto editor coordinates.
package marker

import (
	"math"

	"workbook/internal/diag"
)

// DefaultHighlightWidth is the number of columns a marker spans. The compiler
// output does not carry a reliable span length, so every marker covers a
// short token starting at the reported column.
const DefaultHighlightWidth = 5

// Options configures projection.
type Options struct {
	// HighlightWidth is added to the start column to form EndColumn.
	// Values below 1 select DefaultHighlightWidth.
	HighlightWidth int
}

func (o Options) width() int {
	if o.HighlightWidth < 1 {
		return DefaultHighlightWidth
	}
	return o.HighlightWidth
}

// Marker is an inline editor annotation. Lines and columns are 1-based.
type Marker struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	Message     string
	Severity    diag.Severity
	Code        diag.Code
}

// Project maps every located record to one marker, in record order. Records
// without a location are skipped.
func Project(records []diag.Record, opts Options) []Marker {
	width := opts.width()
	var out []Marker
	for i := range records {
		r := &records[i]
		if r.Location == nil {
			continue
		}
		out = append(out, Marker{
			StartLine:   r.Location.Line,
			StartColumn: r.Location.Column,
			EndLine:     r.Location.Line,
			EndColumn:   endColumn(r.Location.Column, width),
			Message:     r.Message,
			Severity:    r.Severity,
			Code:        r.Code,
		})
	}
	return out
}

func endColumn(start, width int) int {
	if start > math.MaxInt-width {
		return math.MaxInt
	}
	return start + width
}
