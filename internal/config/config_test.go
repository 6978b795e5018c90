package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"workbook/internal/diagfmt"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != filepath.Join(root, FileName) {
		t.Fatalf("Find = %q", got)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[diagnostics]
max_context = 2
extensions = [".rs", ".rlib"]

[output]
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Diagnostics.MaxContext = 2
	want.Diagnostics.Extensions = []string{".rs", ".rlib"}
	want.Output.Format = "json"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Format() != diagfmt.FormatJSON {
		t.Fatalf("Format() = %v", cfg.Format())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[output]\nfromat = \"json\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "output.fromat") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadValidates(t *testing.T) {
	for name, body := range map[string]string{
		"format":    "[output]\nformat = \"sarif\"\n",
		"color":     "[output]\ncolor = \"sometimes\"\n",
		"extension": "[diagnostics]\nextensions = [\"rs\"]\n",
		"jobs":      "[batch]\njobs = -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, body)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"WORKBOOK_MAX_CONTEXT":     "-1",
		"WORKBOOK_HIGHLIGHT_WIDTH": "8",
		"WORKBOOK_EXTENSIONS":      ".rs, .txt ,",
		"WORKBOOK_FORMAT":          "short",
		"WORKBOOK_COLOR":           "off",
		"WORKBOOK_JOBS":            "3",
		"WORKBOOK_IGNORED":         "x",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Diagnostics.MaxContext != -1 || cfg.Diagnostics.HighlightWidth != 8 {
		t.Fatalf("unexpected diagnostics: %+v", cfg.Diagnostics)
	}
	if diff := cmp.Diff([]string{".rs", ".txt"}, cfg.Diagnostics.Extensions); diff != "" {
		t.Fatalf("extensions (-want +got):\n%s", diff)
	}
	if cfg.Output.Format != "short" || cfg.Output.Color != "off" || cfg.Batch.Jobs != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	env = map[string]string{"WORKBOOK_JOBS": "many"}
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Fatalf("expected parse error for WORKBOOK_JOBS")
	}
}

func TestResolveLoadsDotEnv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[batch]\njobs = 2\n")
	writeFile(t, filepath.Join(root, ".env"), "WORKBOOK_HIGHLIGHT_WIDTH=9\n")
	t.Setenv("WORKBOOK_HIGHLIGHT_WIDTH", "")
	os.Unsetenv("WORKBOOK_HIGHLIGHT_WIDTH")

	cfg, path, err := Resolve(root, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != filepath.Join(root, FileName) {
		t.Fatalf("path = %q", path)
	}
	if cfg.Batch.Jobs != 2 || cfg.Diagnostics.HighlightWidth != 9 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestResolveWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, path, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != "" {
		// a workbook.toml above the temp dir would leak into the test
		t.Skipf("found unrelated %s at %s", FileName, path)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestDriverOptions(t *testing.T) {
	cfg := Default()
	cfg.Diagnostics.MaxContext = 7
	cfg.Diagnostics.HighlightWidth = 3
	cfg.Diagnostics.KeepSummaries = true
	opts := cfg.DriverOptions()
	if opts.Aggregate.MaxContext != 7 || !opts.Aggregate.KeepSummaries || opts.Marker.HighlightWidth != 3 {
		t.Fatalf("unexpected driver options: %+v", opts)
	}
	if !opts.Scan.StripANSI || len(opts.Scan.Extensions) != 1 {
		t.Fatalf("unexpected scan options: %+v", opts.Scan)
	}
}
