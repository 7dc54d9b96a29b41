package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arvindsr33/mm-radar/internal/render"
	"github.com/arvindsr33/mm-radar/radar/doppler"
	"github.com/arvindsr33/mm-radar/radar/normalize"
	"github.com/arvindsr33/mm-radar/radar/reconstruct"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRangeDopplerCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rangedoppler <session-dir>",
		Aliases: []string{"rd"},
		Short:   "Write one normalized range-Doppler PNG per frame",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runRangeDoppler(cmd, args[0])
		},
	}
}

func (o *options) runRangeDoppler(cmd *cobra.Command, dir string) error {
	ctx := cmd.Context()

	seq, g, err := o.session(dir)
	if err != nil {
		return err
	}
	proc, err := doppler.New(o.profile.Doppler, doppler.WithLogger(o.logger))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(o.profile.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	w := &render.FrameWriter{Dir: o.profile.Output.Dir, Prefix: sessionLabel(dir)}

	stream, err := reconstruct.NewStream(seq, g, o.streamOptions()...)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		c, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		maps, err := proc.RangeDopplerMaps(c)
		if err != nil {
			return err
		}
		if !o.profile.Output.Frames {
			continue
		}
		for _, m := range maps {
			if _, err := w.Write(normalize.Image(m)); err != nil {
				return err
			}
		}
	}

	st := stream.Stats()
	o.logger.Info("range-Doppler done",
		zap.Int64("frames", st.FramesEmitted),
		zap.Int("written", w.Count()),
		zap.Int("carryover", st.Carryover))
	fmt.Fprintf(cmd.OutOrStdout(), "%d frames, %d images written to %s\n", st.FramesEmitted, w.Count(), o.profile.Output.Dir)
	return nil
}

func (o *options) streamOptions() []reconstruct.Option {
	opts := []reconstruct.Option{reconstruct.WithLogger(o.logger)}
	if o.prefetch {
		opts = append(opts, reconstruct.WithPrefetch())
	}
	return opts
}
