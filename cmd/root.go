// Package cmd implements the lyricseg command line.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/randalmurphal/lyricseg/config"
	"github.com/randalmurphal/lyricseg/source"
)

// options holds flag values shared by all subcommands.
type options struct {
	configPath    string
	limit         int
	measure       string
	format        string
	encoding      string
	inputFormat   string
	abbreviations []string
	spans         bool
	verbose       bool
}

// NewRootCmd creates the lyricseg root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "lyricseg",
		Short: "Split lyrics into display lines",
		Long: `lyricseg splits song lyrics into display lines close to a target length,
breaking at sentence punctuation, then clause punctuation, then whitespace.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	bindFlags(root.PersistentFlags(), opts)

	root.AddCommand(
		newSplitCmd(opts),
		newWatchCmd(opts),
		newSchemaCmd(),
	)
	return root
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	def := config.DefaultConfig()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml, .yml or .json)")
	flags.IntVarP(&opts.limit, "limit", "l", def.Limit, "target line length")
	flags.StringVarP(&opts.measure, "measure", "m", def.Measure, "length measure: runes, graphemes or cells")
	flags.StringVarP(&opts.format, "format", "f", def.Format, "output format: text, json or yaml")
	flags.StringVar(&opts.encoding, "encoding", "", "input charset (default: detect)")
	flags.StringVar(&opts.inputFormat, "input-format", def.InputFormat, "input format: auto, text or html")
	flags.StringSliceVar(&opts.abbreviations, "abbrev", nil, "extra abbreviations whose period never ends a sentence")
	flags.BoolVar(&opts.spans, "spans", false, "include source byte spans in json/yaml output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
}

// resolve layers defaults, config file, environment and changed flags.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Limit = o.limit
	}
	if flags.Changed("measure") {
		cfg.Measure = o.measure
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("encoding") {
		cfg.Encoding = o.encoding
	}
	if flags.Changed("input-format") {
		cfg.InputFormat = o.inputFormat
	}
	if flags.Changed("abbrev") {
		cfg.Abbreviations = append(cfg.Abbreviations, o.abbreviations...)
	}
	if flags.Changed("spans") {
		cfg.Spans = o.spans
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	slog.Debug("resolved config",
		slog.Int("limit", cfg.Limit),
		slog.String("measure", cfg.Measure),
		slog.String("format", cfg.Format))
	return cfg, nil
}

func newLoader(cmd *cobra.Command, cfg config.Config) (*source.Loader, error) {
	format, err := source.ParseFormat(cfg.InputFormat)
	if err != nil {
		return nil, fmt.Errorf("input format: %w", err)
	}
	return source.NewLoader().
		WithCharset(cfg.Encoding).
		WithFormat(format).
		WithStdin(cmd.InOrStdin()), nil
}
