package marker

import (
	"fortio.org/safecast"

	"workbook/internal/diag"
)

// LSP severities.
const (
	LSPSeverityError   = 1
	LSPSeverityWarning = 2
)

const maxUint32 = ^uint32(0)

// Position is a zero-based LSP position.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a zero-based, end-exclusive LSP range.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// LSPDiagnostic mirrors the textDocument/publishDiagnostics item.
type LSPDiagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity,omitempty"`
	Code     string `json:"code,omitempty"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
}

// PublishParams is the payload of a publishDiagnostics notification.
type PublishParams struct {
	URI         string          `json:"uri"`
	Diagnostics []LSPDiagnostic `json:"diagnostics"`
}

// ToLSP converts 1-based markers into zero-based LSP diagnostics.
func ToLSP(markers []Marker, source string) []LSPDiagnostic {
	out := make([]LSPDiagnostic, 0, len(markers))
	for _, m := range markers {
		out = append(out, LSPDiagnostic{
			Range: Range{
				Start: Position{Line: zeroBased(m.StartLine), Character: zeroBased(m.StartColumn)},
				End:   Position{Line: zeroBased(m.EndLine), Character: zeroBased(m.EndColumn)},
			},
			Severity: lspSeverity(m.Severity),
			Code:     string(m.Code),
			Source:   source,
			Message:  m.Message,
		})
	}
	return out
}

func zeroBased(n int) uint32 {
	if n <= 1 {
		return 0
	}
	v, err := safecast.Conv[uint32](n - 1)
	if err != nil {
		return maxUint32
	}
	return v
}

func lspSeverity(sev diag.Severity) int {
	if sev == diag.SevWarning {
		return LSPSeverityWarning
	}
	return LSPSeverityError
}
