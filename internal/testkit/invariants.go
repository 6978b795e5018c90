package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"workbook/internal/diag"
	"workbook/internal/marker"
)

// CheckInvariants verifies the contract between raw stderr and the pipeline
// output:
// 1) non-empty text yields at least one record; empty text yields none
// 2) every record carries a message, and a location is 1-based when present
// 3) markers correspond 1:1, in order, to located records
// 4) every marker spans at least one column on a single line
func CheckInvariants(stderr string, records []diag.Record, markers []marker.Marker) error {
	// 1) record presence
	if strings.TrimSpace(stderr) == "" {
		if len(records) != 0 {
			return fmt.Errorf("empty input produced %d records", len(records))
		}
	} else if len(records) == 0 {
		return fmt.Errorf("non-empty input produced no records")
	}

	// 2) record shape
	located := make([]*diag.Record, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.Message == "" {
			return fmt.Errorf("record %d has no message", i)
		}
		if r.Severity != diag.SevError && r.Severity != diag.SevWarning {
			return fmt.Errorf("record %d has unknown severity %d", i, r.Severity)
		}
		if r.Location == nil {
			continue
		}
		if r.Location.Line < 1 || r.Location.Column < 1 {
			return fmt.Errorf("record %d has non-positive location %s", i, r.Location)
		}
		located = append(located, r)
	}

	// 3) markers follow located records
	if len(markers) != len(located) {
		return fmt.Errorf("got %d markers for %d located records", len(markers), len(located))
	}
	for i, m := range markers {
		r := located[i]
		if m.StartLine != r.Location.Line || m.StartColumn != r.Location.Column {
			return fmt.Errorf("marker %d at %d:%d, record at %s", i, m.StartLine, m.StartColumn, r.Location)
		}
		if m.Severity != r.Severity || m.Message != r.Message {
			return fmt.Errorf("marker %d does not mirror its record", i)
		}
		// 4) span sanity
		if m.EndLine != m.StartLine {
			return fmt.Errorf("marker %d spans lines %d-%d", i, m.StartLine, m.EndLine)
		}
		width, err := safecast.Conv[uint32](m.EndColumn - m.StartColumn)
		if err != nil || width == 0 {
			return fmt.Errorf("marker %d has empty or inverted span %d-%d", i, m.StartColumn, m.EndColumn)
		}
	}
	return nil
}
