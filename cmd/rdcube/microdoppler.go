package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arvindsr33/mm-radar/internal/render"
	"github.com/arvindsr33/mm-radar/radar/doppler"
	"github.com/arvindsr33/mm-radar/radar/microdoppler"
	"github.com/arvindsr33/mm-radar/radar/normalize"
	"github.com/arvindsr33/mm-radar/radar/reconstruct"
	"github.com/arvindsr33/mm-radar/radar/signature"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type microDopplerFlags struct {
	units       string
	maxVelocity float64
	power       bool
	gray        bool
	features    bool
}

func newMicroDopplerCmd(o *options) *cobra.Command {
	f := &microDopplerFlags{}
	cmd := &cobra.Command{
		Use:     "microdoppler <session-dir>",
		Aliases: []string{"md"},
		Short:   "Accumulate a micro-Doppler spectrogram over the whole session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runMicroDoppler(cmd, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.units, "units", "", "doppler axis units: velocity or frequency (overrides [microdoppler] units)")
	cmd.Flags().Float64Var(&f.maxVelocity, "max-velocity", 0, "m/s spanned by the doppler axis (overrides [microdoppler] max_velocity)")
	cmd.Flags().BoolVar(&f.power, "power", false, "sum squared range bins before the doppler FFT")
	cmd.Flags().BoolVar(&f.gray, "gray", false, "also write per-frame normalized columns as a grayscale PNG")
	cmd.Flags().BoolVar(&f.features, "features", false, "also write per-frame doppler signature features as CSV")
	return cmd
}

func (o *options) runMicroDoppler(cmd *cobra.Command, f *microDopplerFlags, dir string) error {
	ctx := cmd.Context()
	mc := o.profile.MicroDoppler

	if f.units != "" {
		u, err := microdoppler.ParseUnits(f.units)
		if err != nil {
			return err
		}
		mc.Units = u
	}
	if f.maxVelocity > 0 {
		mc.MaxVelocity = f.maxVelocity
	}
	if f.power {
		mc.PowerAccumulation = true
	}

	seq, g, err := o.session(dir)
	if err != nil {
		return err
	}
	proc, err := doppler.New(o.profile.Doppler, doppler.WithLogger(o.logger))
	if err != nil {
		return err
	}

	opts := []microdoppler.Option{
		microdoppler.WithCarrier(mc.CarrierHz),
		microdoppler.WithLogger(o.logger),
	}
	if mc.PowerAccumulation {
		opts = append(opts, microdoppler.WithPowerAccumulation())
	}
	acc := microdoppler.New(proc, opts...)

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
		if err := acc.Add(c); err != nil {
			return err
		}
	}

	o.logger.Info("spectrogram accumulated",
		zap.Int("columns", acc.Columns()),
		zap.Int("bins", acc.Bins()),
		zap.Stringer("units", mc.Units))
	if acc.Columns() == 0 {
		return fmt.Errorf("session %s holds no complete frame", dir)
	}

	if err := os.MkdirAll(o.profile.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	img := acc.Image()
	times := acc.TimeAxis(g.FPS)
	if g.FPS <= 0 {
		// Without a frame rate the time axis counts frames.
		for i := range times {
			times[i] = float64(i)
		}
	}
	bins := acc.Axis(mc.Units, mc.MaxVelocity)
	var written []string

	if o.profile.Output.CSV {
		path := o.outputPath(dir, "_microdoppler.csv")
		if err := writeCSVFile(path, nil, img); err != nil {
			return err
		}
		written = append(written, path)
	}

	if o.profile.Output.Heatmap && acc.Columns() > 1 {
		s := render.Spectrogram{Image: img, Times: times, Bins: bins, Units: mc.Units}
		path := o.outputPath(dir, "_microdoppler.png")
		if err := render.Heatmap(path, sessionLabel(dir), s); err != nil {
			return err
		}
		written = append(written, path)
	}

	if f.gray {
		path := o.outputPath(dir, "_microdoppler_gray.png")
		if err := render.WriteFramePNG(path, normalize.ColumnsImage(img)); err != nil {
			return err
		}
		written = append(written, path)
	}

	if f.features {
		path := o.outputPath(dir, "_signature.csv")
		if err := writeFeatures(path, img, times, bins, o.profile.Doppler.LogBase); err != nil {
			return err
		}
		written = append(written, path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d columns x %d bins\n", acc.Columns(), acc.Bins())
	for _, p := range written {
		fmt.Fprintln(out, p)
	}
	return nil
}

func writeFeatures(path string, img [][]float64, times, bins []float64, base float64) error {
	e, err := signature.NewExtractor(bins, base, signature.DefaultEnvelope)
	if err != nil {
		return err
	}
	fs, err := e.Image(img)
	if err != nil {
		return err
	}
	return writeCSVFile(path, signature.Header, signature.Table(times, fs))
}

func writeCSVFile(path string, header []string, rows [][]float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.WriteTable(f, header, rows)
}
