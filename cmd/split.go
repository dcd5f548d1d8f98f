package cmd

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/lyricseg/config"
	"github.com/randalmurphal/lyricseg/render"
	"github.com/randalmurphal/lyricseg/source"
)

func newSplitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "split [file]",
		Short: "Split a lyrics file (or stdin) into display lines",
		Example: `  lyricseg split song.txt
  lyricseg split --limit 20 --format json song.html
  cat song.txt | lyricseg split -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			path := source.Stdin
			if len(args) == 1 {
				path = args[0]
			}

			loader, err := newLoader(cmd, cfg)
			if err != nil {
				return err
			}
			raw, err := loader.Load(path)
			if err != nil {
				return err
			}

			doc, format, err := segmentDocument(cfg, raw)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), doc.WithSource(path), format)
		},
	}
}

// segmentDocument segments raw with cfg and builds the output document.
func segmentDocument(cfg config.Config, raw string) (*render.Document, render.Format, error) {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, "", err
	}
	mode, counter, err := cfg.Counter()
	if err != nil {
		return nil, "", err
	}
	segmenter, err := cfg.Segmenter()
	if err != nil {
		return nil, "", err
	}

	lines, err := segmenter.Segment(raw, cfg.Limit)
	if err != nil {
		return nil, "", err
	}

	doc := render.NewDocument(lines, cfg.Limit, mode, counter)
	if cfg.Spans {
		doc.WithSpans(raw)
	}
	return doc, format, nil
}
