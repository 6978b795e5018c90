package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"workbook/internal/diagfmt"
	"workbook/internal/driver"
	"workbook/internal/marker"
)

var markersCmd = &cobra.Command{
	Use:   "markers [flags] [result.json|stderr.txt|-]",
	Short: "Print the editor markers for one compilation result",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMarkers,
}

func init() {
	markersCmd.Flags().String("format", "table", "output format (table|json|lsp|msgpack)")
	markersCmd.Flags().String("uri", "file:///main.rs", "document URI for lsp output")
	markersCmd.Flags().String("namespace", "", "marker namespace for msgpack output (default: input name)")
	registerPipelineFlags(markersCmd)
}

func runMarkers(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pipeOpts, kind, err := s.pipelineOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	uri, err := cmd.Flags().GetString("uri")
	if err != nil {
		return fmt.Errorf("failed to get uri flag: %w", err)
	}
	namespace, err := cmd.Flags().GetString("namespace")
	if err != nil {
		return fmt.Errorf("failed to get namespace flag: %w", err)
	}

	data, name, err := readInput(argOrEmpty(args), cmd.InOrStdin())
	if err != nil {
		return err
	}
	cr, err := driver.Decode(data, kind)
	if err != nil {
		return err
	}
	res := driver.New(pipeOpts).Diagnose(cr)
	if namespace == "" {
		namespace = name
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		writeMarkerTable(out, res.Markers)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(diagfmt.BuildOutput(reportOf(res), diagfmt.JSONOpts{IncludeMarkers: true}).Markers); err != nil {
			return err
		}
	case "lsp":
		if err := diagfmt.LSP(out, uri, res.Markers); err != nil {
			return err
		}
	case "msgpack":
		if err := diagfmt.Msgpack(out, namespace, res.Markers); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (must be table, json, lsp or msgpack)", format)
	}
	if s.timings && res.Timing != nil {
		printTimings(cmd.ErrOrStderr(), *res.Timing)
	}
	return nil
}

func writeMarkerTable(out io.Writer, markers []marker.Marker) {
	for _, m := range markers {
		span := fmt.Sprintf("%d:%d-%d:%d", m.StartLine, m.StartColumn, m.EndLine, m.EndColumn)
		fmt.Fprintf(out, "%-16s %-7s %-6s %s\n", span, m.Severity.Label(), m.Code.ID(), m.Message)
	}
}
