// Package batch diagnoses many stored compilation results at once.
package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"workbook/internal/driver"
	"workbook/internal/marker"
)

// Request describes one batch run.
type Request struct {
	Patterns []string
	BaseDir  string
	Jobs     int // <= 0 means GOMAXPROCS
	Input    driver.InputKind
	Options  driver.Options
	Progress ProgressSink
	Logger   zerolog.Logger
	// Board, when set, receives each file's markers under the file path as
	// namespace.
	Board *marker.Board
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path    string
	Result  driver.Result
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the file errored or produced error records.
func (r *FileResult) Failed() bool {
	return r.Err != nil || r.Result.HasErrors()
}

// Run expands req.Patterns and diagnoses each file. Results are sorted by
// path. A file that cannot be read or decoded gets Err set and does not stop
// the others; only cancellation of ctx aborts the batch.
func Run(ctx context.Context, req Request) ([]FileResult, error) {
	files, err := Expand(req.BaseDir, req.Patterns)
	if err != nil {
		return nil, err
	}
	return RunFiles(ctx, files, req)
}

// RunFiles is Run over an already expanded file list, kept in the given order.
func RunFiles(ctx context.Context, files []string, req Request) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := req.Logger
	emit := func(evt Event) {
		if req.Progress != nil {
			req.Progress.OnEvent(evt)
		}
	}

	for _, path := range files {
		emit(Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	pipeline := driver.New(req.Options)
	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			res := FileResult{Path: path}

			emit(Event{File: path, Stage: StageRead, Status: StatusWorking})
			cr, err := readResult(path, req.Input)
			if err != nil {
				res.Err = err
				res.Elapsed = time.Since(start)
				results[i] = res
				log.Warn().Err(err).Str("file", path).Msg("skipping unreadable result")
				emit(Event{File: path, Stage: StageRead, Status: StatusError, Err: err, Elapsed: res.Elapsed})
				return nil
			}

			emit(Event{File: path, Stage: StageDiagnose, Status: StatusWorking})
			res.Result = pipeline.Diagnose(cr)
			res.Elapsed = time.Since(start)
			results[i] = res

			if req.Board != nil {
				req.Board.Replace(path, res.Result.Markers)
			}
			counts := res.Result.Counts()
			log.Debug().
				Str("file", path).
				Int("errors", counts.Errors).
				Int("warnings", counts.Warnings).
				Dur("elapsed", res.Elapsed).
				Msg("diagnosed")

			status := StatusDone
			if res.Result.HasErrors() {
				status = StatusProblems
			}
			emit(Event{File: path, Stage: StageDiagnose, Status: status, Elapsed: res.Elapsed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readResult(path string, kind driver.InputKind) (driver.CompilationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return driver.CompilationResult{}, fmt.Errorf("failed to read %q: %w", path, err)
	}
	cr, err := driver.Decode(data, kind)
	if err != nil {
		return driver.CompilationResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return cr, nil
}
