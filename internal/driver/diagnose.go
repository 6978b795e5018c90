// Package driver runs the diagnostic pipeline (scan → aggregate → project)
// over one compilation result.
package driver

import (
	"fmt"
	"strings"

	"workbook/internal/aggregate"
	"workbook/internal/diag"
	"workbook/internal/marker"
	"workbook/internal/observ"
	"workbook/internal/scan"
)

// Options bundles per-stage options.
type Options struct {
	Scan          scan.Options
	Aggregate     aggregate.Options
	Marker        marker.Options
	EnableTimings bool
}

// DefaultOptions matches rustc output from the execution sandbox.
func DefaultOptions() Options {
	return Options{Scan: scan.DefaultOptions()}
}

// Pipeline holds the compiled scanner; it carries no per-run state and may be
// shared by concurrent callers.
type Pipeline struct {
	opts    Options
	scanner *scan.Scanner
}

// New prepares a pipeline for opts.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts, scanner: scan.New(opts.Scan)}
}

// Result is everything the problem list and the editor need for one run.
type Result struct {
	Success  bool
	ExitCode int
	Output   string
	Records  []diag.Record
	Markers  []marker.Marker
	Timing   *observ.Report
}

// Counts tallies Records by severity.
func (r *Result) Counts() diag.Counts {
	return diag.Count(r.Records)
}

// HasErrors reports whether any record is an error.
func (r *Result) HasErrors() bool {
	return diag.HasErrors(r.Records)
}

// Parse runs the pipeline over stderr text alone. Empty stderr yields no
// records and no markers.
func (p *Pipeline) Parse(stderr string) ([]diag.Record, []marker.Marker) {
	return p.parse(stderr, nil)
}

func (p *Pipeline) parse(stderr string, timer *observ.Timer) ([]diag.Record, []marker.Marker) {
	idx := timer.Begin("scan")
	lines := p.scanner.Scan(stderr)
	timer.End(idx, fmt.Sprintf("%d lines", len(lines)))

	idx = timer.Begin("aggregate")
	records := aggregate.Fold(lines, stderr, p.opts.Aggregate)
	timer.End(idx, fmt.Sprintf("%d records", len(records)))

	idx = timer.Begin("project")
	markers := marker.Project(records, p.opts.Marker)
	timer.End(idx, fmt.Sprintf("%d markers", len(markers)))
	return records, markers
}

// Diagnose processes one compilation result. Success output is carried
// through untouched; only stderr is parsed.
//
// A failed submission with empty stderr still yields one error record so the
// problem list is never blank for a failure.
func (p *Pipeline) Diagnose(res CompilationResult) Result {
	var timer *observ.Timer
	if p.opts.EnableTimings {
		timer = observ.NewTimer()
	}

	out := Result{
		Success:  res.Success,
		ExitCode: res.ExitCode,
		Output:   res.Output,
	}
	out.Records, out.Markers = p.parse(res.Stderr, timer)

	if !res.Success && len(out.Records) == 0 {
		msg := strings.TrimSpace(res.Output)
		if msg == "" {
			msg = fmt.Sprintf("process exited with code %d", res.ExitCode)
		}
		out.Records = []diag.Record{diag.NewError(msg)}
	}

	if timer != nil {
		report := timer.Report()
		out.Timing = &report
	}
	return out
}

// Diagnose runs a one-off pipeline with opts.
func Diagnose(res CompilationResult, opts Options) Result {
	return New(opts).Diagnose(res)
}

// Parse runs a one-off pipeline over stderr with opts.
func Parse(stderr string, opts Options) ([]diag.Record, []marker.Marker) {
	return New(opts).Parse(stderr)
}
