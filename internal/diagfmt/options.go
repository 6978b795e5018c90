package diagfmt

import (
	"fmt"
	"strings"
)

// Format names an output encoding for diagnostics.
type Format uint8

const (
	// FormatPretty is the human problem list.
	FormatPretty Format = iota
	// FormatShort prints one line per record.
	FormatShort
	// FormatJSON prints records, markers and counts.
	FormatJSON
	// FormatLSP prints a publishDiagnostics payload.
	FormatLSP
	// FormatMsgpack writes the binary marker payload.
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	case FormatLSP:
		return "lsp"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	case "lsp":
		return FormatLSP, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return FormatPretty, fmt.Errorf("unknown format %q (expected pretty|short|json|lsp|msgpack)", s)
	}
}

// ListOpts configures the problem list.
type ListOpts struct {
	Color       bool
	Icons       bool
	Width       int // максимальная ширина строки, 0 - не ограничено
	Indent      int // отступ строк контекста; 0 - по умолчанию (4)
	ShowContext bool
	ShowExplain bool // append the error index link for numbered codes
}

// DefaultListOpts is the panel rendering: icons and context, no colour.
func DefaultListOpts() ListOpts {
	return ListOpts{Icons: true, ShowContext: true}
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	IncludeContext bool
	IncludeMarkers bool
	Indent         bool
}
