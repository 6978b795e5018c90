package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"workbook/internal/config"
	"workbook/internal/driver"
)

// settings is the merged view of workbook.toml, .env, WORKBOOK_* and the
// persistent flags for one command invocation.
type settings struct {
	cfg      config.Config
	cfgPath  string
	log      zerolog.Logger
	colorOut bool
	quiet    bool
	timings  bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	cfgFlag, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	logger, err := newLogger(os.Stderr, logLevel, isTerminal(os.Stderr))
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, cfgPath, err := config.Resolve(wd, cfgFlag)
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		logger.Debug().Str("path", cfgPath).Msg("loaded config")
	}

	if flags.Changed("color") {
		colorFlag, err := flags.GetString("color")
		if err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
		cfg.Output.Color = colorFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	colorMode, err := parseToggle("output.color", cfg.Output.Color)
	if err != nil {
		return nil, err
	}

	return &settings{
		cfg:      cfg,
		cfgPath:  cfgPath,
		log:      logger,
		colorOut: colorMode.enabled(os.Stdout),
		quiet:    quiet,
		timings:  timings,
	}, nil
}

// registerPipelineFlags adds the per-run overrides shared by diag, markers
// and batch.
func registerPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "auto", "input kind (auto|result|piston|raw)")
	cmd.Flags().Int("max-context", 0, "context lines kept per diagnostic after its location (-1 = unlimited)")
	cmd.Flags().Int("highlight-width", 0, "columns covered by each marker")
	cmd.Flags().Bool("keep-summaries", false, "keep trailer lines such as 'aborting due to ...' as records")
}

// pipelineOptions merges config and flag overrides into driver options.
func (s *settings) pipelineOptions(cmd *cobra.Command) (driver.Options, driver.InputKind, error) {
	flags := cmd.Flags()
	diagCfg := s.cfg.Diagnostics
	if flags.Changed("max-context") {
		v, err := flags.GetInt("max-context")
		if err != nil {
			return driver.Options{}, 0, fmt.Errorf("failed to get max-context flag: %w", err)
		}
		diagCfg.MaxContext = v
	}
	if flags.Changed("highlight-width") {
		v, err := flags.GetInt("highlight-width")
		if err != nil {
			return driver.Options{}, 0, fmt.Errorf("failed to get highlight-width flag: %w", err)
		}
		diagCfg.HighlightWidth = v
	}
	if flags.Changed("keep-summaries") {
		v, err := flags.GetBool("keep-summaries")
		if err != nil {
			return driver.Options{}, 0, fmt.Errorf("failed to get keep-summaries flag: %w", err)
		}
		diagCfg.KeepSummaries = v
	}
	inputStr, err := flags.GetString("input")
	if err != nil {
		return driver.Options{}, 0, fmt.Errorf("failed to get input flag: %w", err)
	}
	kind, err := driver.ParseInputKind(inputStr)
	if err != nil {
		return driver.Options{}, 0, err
	}

	cfg := s.cfg
	cfg.Diagnostics = diagCfg
	opts := cfg.DriverOptions()
	opts.EnableTimings = s.timings
	return opts, kind, nil
}
