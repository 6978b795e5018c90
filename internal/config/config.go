// Package config loads workbook.toml, the optional .env file next to it and
// WORKBOOK_* environment overrides into a single Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"workbook/internal/aggregate"
	"workbook/internal/diagfmt"
	"workbook/internal/driver"
	"workbook/internal/marker"
	"workbook/internal/scan"
)

// FileName is the project configuration file looked up from the working
// directory upwards.
const FileName = "workbook.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WORKBOOK_"

type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Output      OutputConfig      `toml:"output"`
	Batch       BatchConfig       `toml:"batch"`
}

type DiagnosticsConfig struct {
	MaxContext     int      `toml:"max_context"`
	HighlightWidth int      `toml:"highlight_width"`
	Extensions     []string `toml:"extensions"`
	StripANSI      bool     `toml:"strip_ansi"`
	KeepSummaries  bool     `toml:"keep_summaries"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"` // auto|on|off
	Icons  bool   `toml:"icons"`
	Width  int    `toml:"width"`
}

type BatchConfig struct {
	Jobs int    `toml:"jobs"`
	UI   string `toml:"ui"` // auto|on|off
}

// Default mirrors the pipeline defaults.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{
			MaxContext:     aggregate.DefaultMaxContext,
			HighlightWidth: marker.DefaultHighlightWidth,
			Extensions:     append([]string(nil), scan.DefaultExtensions...),
			StripANSI:      true,
		},
		Output: OutputConfig{
			Format: diagfmt.FormatPretty.String(),
			Color:  "auto",
			Icons:  true,
		},
		Batch: BatchConfig{
			UI: "auto",
		},
	}
}

// Find walks from startDir towards the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default. Keys the file leaves out keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("diagnostics", "extensions") && len(cfg.Diagnostics.Extensions) == 0 {
		cfg.Diagnostics.Extensions = nil
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve finds and loads the configuration for startDir. explicit, when
// set, bypasses the upward search. A missing file yields Default. The .env
// file next to the configuration (or in startDir) is loaded into the process
// environment without overriding variables that are already set.
func Resolve(startDir, explicit string) (Config, string, error) {
	path := explicit
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, "", err
		}
		if ok {
			path = found
		}
	}

	envDir := startDir
	if path != "" {
		envDir = filepath.Dir(path)
	}
	if err := LoadEnvFile(envDir); err != nil {
		return Config{}, path, err
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, path, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// LoadEnvFile loads dir/.env when present.
func LoadEnvFile(dir string) error {
	if dir == "" {
		dir = "."
	}
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", envPath, err)
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("%s: %w", envPath, err)
	}
	return nil
}

// ApplyEnv overrides fields from WORKBOOK_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("MAX_CONTEXT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_CONTEXT: %w", EnvPrefix, err)
		}
		c.Diagnostics.MaxContext = n
	}
	if v, ok := get("HIGHLIGHT_WIDTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sHIGHLIGHT_WIDTH: %w", EnvPrefix, err)
		}
		c.Diagnostics.HighlightWidth = n
	}
	if v, ok := get("EXTENSIONS"); ok {
		c.Diagnostics.Extensions = splitList(v)
	}
	if v, ok := get("FORMAT"); ok {
		c.Output.Format = v
	}
	if v, ok := get("COLOR"); ok {
		c.Output.Color = v
	}
	if v, ok := get("JOBS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sJOBS: %w", EnvPrefix, err)
		}
		c.Batch.Jobs = n
	}
	return c.Validate()
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	if c.Diagnostics.HighlightWidth < 0 {
		return fmt.Errorf("diagnostics.highlight_width must be >= 0, got %d", c.Diagnostics.HighlightWidth)
	}
	for _, ext := range c.Diagnostics.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("diagnostics.extensions: %q must start with '.'", ext)
		}
	}
	if _, err := diagfmt.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if !validMode(c.Output.Color) {
		return fmt.Errorf("output.color must be auto|on|off, got %q", c.Output.Color)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("output.width must be >= 0, got %d", c.Output.Width)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("batch.jobs must be >= 0, got %d", c.Batch.Jobs)
	}
	if !validMode(c.Batch.UI) {
		return fmt.Errorf("batch.ui must be auto|on|off, got %q", c.Batch.UI)
	}
	return nil
}

func validMode(s string) bool {
	switch strings.ToLower(s) {
	case "", "auto", "on", "off":
		return true
	}
	return false
}

// DriverOptions converts the diagnostics section into pipeline options.
func (c *Config) DriverOptions() driver.Options {
	opts := driver.DefaultOptions()
	opts.Scan.Extensions = append([]string(nil), c.Diagnostics.Extensions...)
	opts.Scan.StripANSI = c.Diagnostics.StripANSI
	opts.Aggregate.MaxContext = c.Diagnostics.MaxContext
	opts.Aggregate.KeepSummaries = c.Diagnostics.KeepSummaries
	opts.Marker.HighlightWidth = c.Diagnostics.HighlightWidth
	return opts
}

// Format returns the parsed output format.
func (c *Config) Format() diagfmt.Format {
	f, err := diagfmt.ParseFormat(c.Output.Format)
	if err != nil {
		return diagfmt.FormatPretty
	}
	return f
}
