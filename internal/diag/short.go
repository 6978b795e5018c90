package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders records into a stable, single-line-per-entry form
// suitable for golden files and terse CLI output:
//
//	<severity> <code|-> <line:col|-> <message>
//
// Order is kept as given. Extended context is omitted unless includeContext is
// set, in which case each context line follows as a "note" entry.
func FormatShort(records []Record, includeContext bool) string {
	if len(records) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range records {
		r := &records[i]
		if i > 0 {
			b.WriteByte('\n')
		}
		loc := "-"
		if r.Location != nil {
			loc = r.Location.String()
		}
		fmt.Fprintf(&b, "%s %s %s %s", r.Severity.Label(), r.Code.ID(), loc, sanitizeMessage(r.Message))
		if includeContext {
			for _, line := range r.Extended {
				fmt.Fprintf(&b, "\nnote %s - %s", r.Code.ID(), sanitizeMessage(line))
			}
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
