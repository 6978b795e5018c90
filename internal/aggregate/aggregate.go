// Package aggregate folds classified compiler lines into diagnostic records.
package aggregate

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"workbook/internal/diag"
	"workbook/internal/scan"
)

// DefaultMaxContext bounds how many context lines a record keeps after its
// location pointer.
const DefaultMaxContext = 4

// Options configures the fold.
type Options struct {
	// MaxContext caps context lines collected after the location pointer.
	// Zero selects DefaultMaxContext; a negative value removes the cap.
	MaxContext int
	// KeepSummaries turns trailer lines ("aborting due to ...") into records
	// instead of dropping them.
	KeepSummaries bool
}

func (o Options) maxContext() int {
	if o.MaxContext == 0 {
		return DefaultMaxContext
	}
	return o.MaxContext
}

// state is the fold accumulator: at most one open record. out is shared
// between copies of the state.
type state struct {
	out      *diag.Bag
	cur      diag.Record
	open     bool
	afterLoc int
}

// Fold groups lines into records in detection order. raw is the text the
// lines were scanned from; it is used only when no record could be built, in
// which case a single synthetic error carries the whole trimmed text as is.
//
// Fold never fails. Empty (or whitespace-only) raw yields no records.
func Fold(lines []scan.Line, raw string, opts Options) []diag.Record {
	limit := opts.maxContext()
	st := state{out: diag.NewBag(0)}
	for i := range lines {
		st = st.step(&lines[i], limit, opts.KeepSummaries)
	}
	st = st.flush()

	if st.out.Len() == 0 {
		if text := strings.TrimSpace(raw); text != "" {
			return []diag.Record{diag.NewError(text)}
		}
		return nil
	}
	return st.out.Items()
}

func (st state) step(ln *scan.Line, limit int, keepSummaries bool) state {
	switch ln.Kind {
	case scan.KindHeader:
		return st.flush().start(ln)
	case scan.KindSummary:
		st = st.flush()
		if keepSummaries {
			st = st.start(ln)
		}
		return st
	case scan.KindPointer:
		if !st.open {
			return st
		}
		if st.cur.Location == nil {
			st.cur.Location = &diag.Location{File: ln.File, Line: ln.Row, Column: ln.Col}
			return st
		}
		// secondary span: kept as text, the first pointer stays primary
		return st.appendContext(ln.Text, limit)
	case scan.KindContext:
		if !st.open {
			return st
		}
		return st.appendContext(ln.Text, limit)
	}
	return st
}

func (st state) start(ln *scan.Line) state {
	st.cur = diag.New(ln.Severity, ln.Code, ln.Text)
	st.open = true
	st.afterLoc = 0
	return st
}

func (st state) appendContext(text string, limit int) state {
	if st.cur.Message == "" {
		st.cur.Message = text
		return st
	}
	if st.cur.Location != nil {
		if limit >= 0 && st.afterLoc >= limit {
			return st
		}
		st.afterLoc++
	}
	st.cur.Extended = append(st.cur.Extended, text)
	return st
}

func (st state) flush() state {
	if !st.open {
		return st
	}
	rec := st.cur
	if rec.Message == "" {
		rec.Message = rec.Severity.Label()
	}
	rec.Message = normalize(rec.Message)
	for i, line := range rec.Extended {
		rec.Extended[i] = normalize(line)
	}
	st.out.Add(rec)
	st.cur = diag.Record{}
	st.open = false
	st.afterLoc = 0
	return st
}

func normalize(s string) string {
	return norm.NFC.String(s)
}
