package scan

import (
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"workbook/internal/diag"
)

// Scanner classifies compiler output line by line. It holds only compiled
// patterns and is safe for concurrent use.
type Scanner struct {
	opts    Options
	pointer *regexp.Regexp
}

// New compiles a scanner for opts.
func New(opts Options) *Scanner {
	return &Scanner{
		opts:    opts,
		pointer: pointerPattern(opts.Extensions),
	}
}

var defaultScanner = New(DefaultOptions())

// Scan classifies raw with DefaultOptions.
func Scan(raw string) []Line {
	return defaultScanner.Scan(raw)
}

// Scan classifies every line of raw in a single left-to-right pass.
// Blank and gutter-only lines are dropped, so the result never has more
// entries than raw has lines. Scan never fails: text it does not recognise
// becomes context or unclassified.
func (s *Scanner) Scan(raw string) []Line {
	if raw == "" {
		return nil
	}
	if s.opts.StripANSI && strings.IndexByte(raw, 0x1b) >= 0 {
		raw = ansiRe.ReplaceAllString(raw, "")
	}

	var out []Line
	inDiag := false
	for i, text := range strings.Split(raw, "\n") {
		text = strings.TrimRight(text, "\r")
		ln, ok := s.classify(text, inDiag)
		if !ok {
			continue
		}
		ln.Number = i + 1
		switch ln.Kind {
		case KindHeader:
			inDiag = true
		case KindSummary:
			inDiag = false
		}
		out = append(out, ln)
	}
	return out
}

func (s *Scanner) classify(text string, inDiag bool) (Line, bool) {
	if m := headerRe.FindStringSubmatch(text); m != nil {
		sev := diag.SevError
		if m[1] == "warning" {
			sev = diag.SevWarning
		}
		msg := strings.TrimSpace(m[3])
		kind := KindHeader
		if isSummary(msg) {
			kind = KindSummary
		}
		return Line{
			Kind:     kind,
			Severity: sev,
			Code:     diag.Code(strings.TrimSpace(m[2])),
			Text:     msg,
		}, true
	}

	if m := s.pointer.FindStringSubmatch(text); m != nil {
		row, rowOK := coordinate(m[2])
		col, colOK := coordinate(m[3])
		if rowOK && colOK {
			return Line{
				Kind: KindPointer,
				Text: strings.TrimSpace(text),
				File: m[1],
				Row:  row,
				Col:  col,
			}, true
		}
	}

	if gutterRe.MatchString(text) {
		return Line{}, false
	}

	kind := KindUnclassified
	if inDiag {
		kind = KindContext
	}
	return Line{Kind: kind, Text: strings.TrimSpace(text)}, true
}

// coordinate parses a positive line or column number that fits in int32.
func coordinate(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	if _, err := safecast.Conv[int32](n); err != nil {
		return 0, false
	}
	return n, true
}
