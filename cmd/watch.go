package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/lyricseg/render"
	"github.com/randalmurphal/lyricseg/watch"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-split a lyrics file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			loader, err := newLoader(cmd, cfg)
			if err != nil {
				return err
			}
			segmenter, err := cfg.Segmenter()
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			mode, counter, err := cfg.Counter()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := watch.New(args[0], cfg.Limit, loader, segmenter).
				WithDebounce(cfg.Debounce.Std()).
				WithPollInterval(cfg.PollInterval.Std())

			out := cmd.OutOrStdout()
			for rev := range w.Watch(ctx) {
				if rev.Err != nil {
					slog.Warn("cannot segment lyrics",
						slog.String("path", w.Path()),
						slog.Int("revision", rev.Seq),
						slog.Any("error", rev.Err))
					continue
				}

				doc := render.NewDocument(rev.Lines, cfg.Limit, mode, counter).WithSource(w.Path())
				if cfg.Spans {
					doc.WithSpans(rev.Raw)
				}
				if format == render.Text {
					fmt.Fprintf(out, "--- revision %d (%d lines) ---\n", rev.Seq, len(rev.Lines))
				}
				if err := render.Write(out, doc, format); err != nil {
					return err
				}
			}

			// The revision channel closes when ctx ends; that is a normal exit.
			return nil
		},
	}
}
