package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/arvindsr33/mm-radar/radar/capture"
	"github.com/arvindsr33/mm-radar/radar/levels"
	"github.com/arvindsr33/mm-radar/radar/reconstruct"
	"github.com/spf13/cobra"
)

func newInfoCmd(o *options) *cobra.Command {
	var withLevels bool
	cmd := &cobra.Command{
		Use:   "info <session-dir>",
		Short: "Print the geometry, files and frame count of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			seq, g, err := o.session(dir)
			if err != nil {
				return err
			}
			frames, err := seq.FrameCount(g)
			if err != nil {
				return err
			}
			words, err := seq.TotalWords()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Session\t%s\n", sessionLabel(dir))
			fmt.Fprintf(tw, "Geometry\t%v\n", g)
			fmt.Fprintf(tw, "Packet\t%d words\n", g.PacketLen())
			fmt.Fprintf(tw, "Frame\t%d words\n", g.FrameLen())
			fmt.Fprintf(tw, "Files\t%d\n", seq.Len())
			fmt.Fprintf(tw, "Words\t%d\n", words)
			fmt.Fprintf(tw, "Frames\t%d\n", frames)
			if g.FPS > 0 {
				fmt.Fprintf(tw, "Duration\t%v\n", g.Duration(frames))
			}
			for i, f := range seq.Files() {
				fmt.Fprintf(tw, "  [%d]\t%s\n", i, filepath.Base(f))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if !withLevels {
				return nil
			}
			return o.printLevels(cmd, seq, g)
		},
	}
	cmd.Flags().BoolVar(&withLevels, "levels", false, "reconstruct the session and print ADC levels per receive channel")
	return cmd
}

func (o *options) printLevels(cmd *cobra.Command, seq *capture.Sequence, g capture.Geometry) error {
	stream, err := reconstruct.NewStream(seq, g, o.streamOptions()...)
	if err != nil {
		return err
	}
	defer stream.Close()

	m := levels.NewMeter()
	for {
		c, err := stream.Next(cmd.Context())
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := m.Update(c); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nRx\tSamples\tMean I\tMean Q\tStd I\tStd Q\tPeak\tClipped\tI/Q [dB]\n")
	for _, l := range m.Result() {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.0f\t%d\t%.2f\n",
			l.Channel, l.Samples, l.MeanI, l.MeanQ, l.StdI, l.StdQ, l.Peak, l.Clipped, l.ImbalancedB)
	}
	return tw.Flush()
}
