package diagfmt

import (
	"encoding/json"
	"io"

	"workbook/internal/diag"
	"workbook/internal/marker"
)

// LocationJSON is a 1-based source position.
type LocationJSON struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// RecordJSON is the JSON form of a diag.Record.
type RecordJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code,omitempty"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Extended []string      `json:"extended,omitempty"`
	Explain  string        `json:"explain,omitempty"`
}

// MarkerJSON is the JSON form of a marker.Marker.
type MarkerJSON struct {
	StartLine   int    `json:"startLine" msgpack:"start_line"`
	StartColumn int    `json:"startColumn" msgpack:"start_column"`
	EndLine     int    `json:"endLine" msgpack:"end_line"`
	EndColumn   int    `json:"endColumn" msgpack:"end_column"`
	Message     string `json:"message" msgpack:"message"`
	Severity    string `json:"severity" msgpack:"severity"`
	Code        string `json:"code,omitempty" msgpack:"code,omitempty"`
}

// Output is the root of the JSON document.
type Output struct {
	Success  bool         `json:"success"`
	ExitCode int          `json:"exitCode"`
	Records  []RecordJSON `json:"records"`
	Markers  []MarkerJSON `json:"markers,omitempty"`
	Counts   diag.Counts  `json:"counts"`
}

// Report is the renderer-neutral view of one pipeline run.
type Report struct {
	Success  bool
	ExitCode int
	Records  []diag.Record
	Markers  []marker.Marker
}

// BuildOutput converts a report into its JSON structure without encoding it.
func BuildOutput(rep Report, opts JSONOpts) Output {
	out := Output{
		Success:  rep.Success,
		ExitCode: rep.ExitCode,
		Records:  make([]RecordJSON, 0, len(rep.Records)),
		Counts:   diag.Count(rep.Records),
	}
	for i := range rep.Records {
		r := &rep.Records[i]
		rj := RecordJSON{
			Severity: r.Severity.Label(),
			Code:     string(r.Code),
			Message:  r.Message,
			Explain:  r.Code.ExplainURL(),
		}
		if r.Location != nil {
			rj.Location = &LocationJSON{File: r.Location.File, Line: r.Location.Line, Column: r.Location.Column}
		}
		if opts.IncludeContext && len(r.Extended) > 0 {
			rj.Extended = append([]string(nil), r.Extended...)
		}
		out.Records = append(out.Records, rj)
	}
	if opts.IncludeMarkers {
		out.Markers = markersJSON(rep.Markers)
	}
	return out
}

func markersJSON(markers []marker.Marker) []MarkerJSON {
	out := make([]MarkerJSON, 0, len(markers))
	for _, m := range markers {
		out = append(out, MarkerJSON{
			StartLine:   m.StartLine,
			StartColumn: m.StartColumn,
			EndLine:     m.EndLine,
			EndColumn:   m.EndColumn,
			Message:     m.Message,
			Severity:    m.Severity.Label(),
			Code:        string(m.Code),
		})
	}
	return out
}

// JSON encodes a report.
func JSON(w io.Writer, rep Report, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildOutput(rep, opts))
}

// LSP encodes markers as a textDocument/publishDiagnostics payload for uri.
func LSP(w io.Writer, uri string, markers []marker.Marker) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(marker.PublishParams{
		URI:         uri,
		Diagnostics: marker.ToLSP(markers, "rustc"),
	})
}
