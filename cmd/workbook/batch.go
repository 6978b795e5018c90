package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"workbook/internal/batch"
	"workbook/internal/diag"
	"workbook/internal/diagfmt"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <pattern>...",
	Short: "Diagnose many stored compilation results",
	Long: `Expand glob patterns (** is supported) into result files and diagnose each
one in parallel. A file that cannot be read or decoded is reported and does not
stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max parallel workers (0 = config or GOMAXPROCS)")
	batchCmd.Flags().String("ui", "", "progress UI mode (auto|on|off); default from config")
	batchCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	registerPipelineFlags(batchCmd)
}

type batchFileJSON struct {
	Path   string          `json:"path"`
	Error  string          `json:"error,omitempty"`
	Result *diagfmt.Output `json:"result,omitempty"`
}

type batchJSON struct {
	Files  []batchFileJSON `json:"files"`
	Counts diag.Counts     `json:"counts"`
	Failed int             `json:"failed"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pipeOpts, kind, err := s.pipelineOptions(cmd)
	if err != nil {
		return err
	}

	jobs := s.cfg.Batch.Jobs
	if cmd.Flags().Changed("jobs") {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	if uiStr == "" {
		uiStr = s.cfg.Batch.UI
	}
	mode, err := parseToggle("--ui", uiStr)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, short or json)", format)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	files, err := batch.Expand(wd, args)
	if err != nil {
		return err
	}
	s.log.Info().Int("files", len(files)).Int("jobs", jobs).Msg("starting batch")

	req := batch.Request{
		BaseDir: wd,
		Jobs:    jobs,
		Input:   kind,
		Options: pipeOpts,
		Logger:  s.log,
	}
	var results []batch.FileResult
	if format == "pretty" && !s.quiet && mode.enabled(os.Stdout) {
		results, err = runBatchWithUI(cmd.Context(), "diagnosing", files, req)
	} else {
		results, err = batch.RunFiles(cmd.Context(), files, req)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = writeBatchJSON(out, results)
	case "short":
		err = writeBatchShort(out, results)
	default:
		err = writeBatchPretty(out, results, s)
	}
	if err != nil {
		return err
	}

	for i := range results {
		if results[i].Failed() {
			return errProblemsFound
		}
	}
	return nil
}

func writeBatchPretty(out io.Writer, results []batch.FileResult, s *settings) error {
	var total diag.Counts
	failed := 0
	listOpts := diagfmt.ListOpts{
		Color:       s.colorOut,
		Icons:       s.cfg.Output.Icons,
		Width:       s.cfg.Output.Width,
		ShowContext: true,
	}
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%s\n  %v\n", r.Path, r.Err)
			continue
		}
		counts := r.Result.Counts()
		total.Errors += counts.Errors
		total.Warnings += counts.Warnings
		if len(r.Result.Records) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", r.Path, diagfmt.Summary(counts, s.colorOut))
		if err := diagfmt.List(out, r.Result.Records, listOpts); err != nil {
			return err
		}
	}
	if !s.quiet {
		fmt.Fprintf(out, "\n%d files, %s", len(results), diagfmt.Summary(total, s.colorOut))
		if failed > 0 {
			fmt.Fprintf(out, ", %d unreadable", failed)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func writeBatchShort(out io.Writer, results []batch.FileResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			fmt.Fprintf(out, "%s: error - - %v\n", r.Path, r.Err)
			continue
		}
		text := diag.FormatShort(r.Result.Records, false)
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			fmt.Fprintf(out, "%s: %s\n", r.Path, line)
		}
	}
	return nil
}

func writeBatchJSON(out io.Writer, results []batch.FileResult) error {
	doc := batchJSON{Files: make([]batchFileJSON, 0, len(results))}
	for i := range results {
		r := &results[i]
		entry := batchFileJSON{Path: r.Path}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			doc.Failed++
		} else {
			o := diagfmt.BuildOutput(reportOf(r.Result), diagfmt.JSONOpts{IncludeMarkers: true})
			entry.Result = &o
			doc.Counts.Errors += o.Counts.Errors
			doc.Counts.Warnings += o.Counts.Warnings
		}
		doc.Files = append(doc.Files, entry)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
