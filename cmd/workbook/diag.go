package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"workbook/internal/diagfmt"
	"workbook/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [result.json|stderr.txt|-]",
	Short: "Render the problem list for one compilation result",
	Long: `Read a compilation result (JSON from the execution sandbox, a raw Piston
response, or bare compiler stderr) and print its diagnostics. Reads stdin when
no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "", "output format (pretty|short|json|lsp|msgpack); default from config")
	diagCmd.Flags().Bool("with-context", false, "include context lines in short and json output")
	diagCmd.Flags().Bool("with-markers", false, "include editor markers in json output")
	diagCmd.Flags().Bool("explain", false, "append error index links for numbered codes")
	diagCmd.Flags().Int("width", 0, "truncate problem list lines to this many cells (0 = no limit)")
	diagCmd.Flags().String("uri", "file:///main.rs", "document URI for lsp output")
	diagCmd.Flags().String("namespace", "", "marker namespace for msgpack output (default: input name)")
	registerPipelineFlags(diagCmd)
}

type diagOptions struct {
	format      diagfmt.Format
	withContext bool
	withMarkers bool
	explain     bool
	width       int
	uri         string
	namespace   string
}

func readDiagOptions(cmd *cobra.Command, s *settings) (diagOptions, error) {
	opts := diagOptions{format: s.cfg.Format(), width: s.cfg.Output.Width}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if formatStr != "" {
		if opts.format, err = diagfmt.ParseFormat(formatStr); err != nil {
			return opts, err
		}
	}
	if opts.withContext, err = cmd.Flags().GetBool("with-context"); err != nil {
		return opts, fmt.Errorf("failed to get with-context flag: %w", err)
	}
	if opts.withMarkers, err = cmd.Flags().GetBool("with-markers"); err != nil {
		return opts, fmt.Errorf("failed to get with-markers flag: %w", err)
	}
	if opts.explain, err = cmd.Flags().GetBool("explain"); err != nil {
		return opts, fmt.Errorf("failed to get explain flag: %w", err)
	}
	if cmd.Flags().Changed("width") {
		if opts.width, err = cmd.Flags().GetInt("width"); err != nil {
			return opts, fmt.Errorf("failed to get width flag: %w", err)
		}
	}
	if opts.uri, err = cmd.Flags().GetString("uri"); err != nil {
		return opts, fmt.Errorf("failed to get uri flag: %w", err)
	}
	if opts.namespace, err = cmd.Flags().GetString("namespace"); err != nil {
		return opts, fmt.Errorf("failed to get namespace flag: %w", err)
	}
	return opts, nil
}

func runDiag(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pipeOpts, kind, err := s.pipelineOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := readDiagOptions(cmd, s)
	if err != nil {
		return err
	}

	data, name, err := readInput(argOrEmpty(args), cmd.InOrStdin())
	if err != nil {
		return err
	}
	cr, err := driver.Decode(data, kind)
	if err != nil {
		return err
	}
	s.log.Debug().Str("input", name).Str("kind", kind.String()).Bool("success", cr.Success).Msg("decoded")

	res := driver.New(pipeOpts).Diagnose(cr)
	if opts.namespace == "" {
		opts.namespace = name
	}
	if err := renderDiag(cmd.OutOrStdout(), res, opts, s); err != nil {
		return err
	}
	if s.timings && res.Timing != nil {
		printTimings(cmd.ErrOrStderr(), *res.Timing)
	}
	if res.HasErrors() {
		return errProblemsFound
	}
	return nil
}

func renderDiag(out io.Writer, res driver.Result, opts diagOptions, s *settings) error {
	switch opts.format {
	case diagfmt.FormatPretty:
		listOpts := diagfmt.ListOpts{
			Color:       s.colorOut,
			Icons:       s.cfg.Output.Icons,
			Width:       opts.width,
			ShowContext: true,
			ShowExplain: opts.explain,
		}
		if err := diagfmt.List(out, res.Records, listOpts); err != nil {
			return err
		}
		if !s.quiet {
			if len(res.Records) > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, diagfmt.Summary(res.Counts(), s.colorOut))
		}
		return nil
	case diagfmt.FormatShort:
		return diagfmt.Short(out, res.Records, opts.withContext)
	case diagfmt.FormatJSON:
		return diagfmt.JSON(out, reportOf(res), diagfmt.JSONOpts{
			IncludeContext: opts.withContext,
			IncludeMarkers: opts.withMarkers,
			Indent:         true,
		})
	case diagfmt.FormatLSP:
		return diagfmt.LSP(out, opts.uri, res.Markers)
	case diagfmt.FormatMsgpack:
		if out == os.Stdout && isTerminal(os.Stdout) {
			return fmt.Errorf("refusing to write binary msgpack to a terminal")
		}
		return diagfmt.Msgpack(out, opts.namespace, res.Markers)
	default:
		return fmt.Errorf("unsupported format %v", opts.format)
	}
}

func reportOf(res driver.Result) diagfmt.Report {
	return diagfmt.Report{
		Success:  res.Success,
		ExitCode: res.ExitCode,
		Records:  res.Records,
		Markers:  res.Markers,
	}
}
