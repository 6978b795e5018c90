package scan

import (
	"fmt"

	"workbook/internal/diag"
)

// Line is one classified line of compiler output.
//
// Which fields are meaningful depends on Kind:
//   - KindHeader, KindSummary: Severity, Code, Text (message after the colon).
//   - KindPointer: File, Row, Col, Text (the trimmed pointer line).
//   - KindContext, KindUnclassified: Text (trimmed).
type Line struct {
	Kind     Kind
	Number   int // 1-based line number in the raw output
	Severity diag.Severity
	Code     diag.Code
	Text     string
	File     string
	Row      int
	Col      int
}

func (l Line) String() string {
	switch l.Kind {
	case KindHeader, KindSummary:
		if l.Code != "" {
			return fmt.Sprintf("%d %s %s[%s]: %s", l.Number, l.Kind, l.Severity.Label(), l.Code, l.Text)
		}
		return fmt.Sprintf("%d %s %s: %s", l.Number, l.Kind, l.Severity.Label(), l.Text)
	case KindPointer:
		return fmt.Sprintf("%d %s %s:%d:%d", l.Number, l.Kind, l.File, l.Row, l.Col)
	default:
		return fmt.Sprintf("%d %s %s", l.Number, l.Kind, l.Text)
	}
}
