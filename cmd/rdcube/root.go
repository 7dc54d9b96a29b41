package main

import (
	"fmt"
	"path/filepath"

	"github.com/arvindsr33/mm-radar/internal/config"
	"github.com/arvindsr33/mm-radar/internal/logging"
	"github.com/arvindsr33/mm-radar/radar/capture"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	profilePath string
	debug       bool
	outDir      string
	pattern     string
	prefetch    bool

	samples int
	chirps  int
	rx      int
	header  int

	profile *config.Profile
	logger  *zap.Logger
	runID   string
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "rdcube",
		Short: "Reassemble raw radar captures and render Doppler products",
		Long: `rdcube reads the raw ADC files of a capture session, rebuilds the
radar data cube frame by frame and renders range-Doppler frames or a
micro-Doppler spectrogram.

Geometry is taken from the profile, then from the session directory name
(dca_<mmmdd>_<hhmm>_trx<tx><rx>_n<samples>xp<chirps>_fps<fps>_<label>),
then from explicit flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.profilePath, "profile", "p", "", "TOML processing profile (default: built-in defaults)")
	pf.BoolVar(&o.debug, "debug", false, "human readable debug logging")
	pf.StringVarP(&o.outDir, "out", "o", "", "output directory (overrides [output] dir)")
	pf.StringVar(&o.pattern, "pattern", capture.DefaultPattern, "glob matching the capture files of a session")
	pf.BoolVar(&o.prefetch, "prefetch", true, "read the next capture file while the current one is processed")
	pf.IntVar(&o.samples, "samples", 0, "ADC samples per chirp")
	pf.IntVar(&o.chirps, "chirps", 0, "chirps per frame")
	pf.IntVar(&o.rx, "rx", 0, "receive channels")
	pf.IntVar(&o.header, "header-words", 0, "header words per packet")

	root.AddCommand(
		newInfoCmd(o),
		newRangeDopplerCmd(o),
		newMicroDopplerCmd(o),
		newWindowsCmd(),
	)
	return root
}

func (o *options) setup(cmd *cobra.Command) error {
	p := config.Default()
	if o.profilePath != "" {
		loaded, err := config.Load(o.profilePath)
		if err != nil {
			return err
		}
		p = *loaded
	}
	if cmd.Flags().Changed("debug") {
		p.Debug = o.debug
	}
	if o.outDir != "" {
		p.Output.Dir = o.outDir
	}
	o.profile = &p

	logger, err := logging.New(p.Debug)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	o.runID = uuid.NewString()
	o.logger = logger.With(zap.String("run", o.runID), zap.String("command", cmd.Name()))
	return nil
}

// geometry resolves the capture geometry for the session in dir.
func (o *options) geometry(dir string) (capture.Geometry, error) {
	g := o.profile.Geometry

	if named, err := capture.ParseSessionName(dir); err == nil {
		named.HeaderWords = g.HeaderWords
		named.IQFactor = g.IQFactor
		g = named
	} else {
		o.logger.Debug("session name carries no geometry", zap.Error(err))
	}

	if o.samples > 0 {
		g.NumSamples = o.samples
	}
	if o.chirps > 0 {
		g.NumChirps = o.chirps
	}
	if o.rx > 0 {
		g.NumRx = o.rx
	}
	if o.header > 0 {
		g.HeaderWords = o.header
	}

	if err := g.Validate(); err != nil {
		return capture.Geometry{}, err
	}
	return g, nil
}

// session lists the capture files of dir and checks their sizes.
func (o *options) session(dir string) (*capture.Sequence, capture.Geometry, error) {
	g, err := o.geometry(dir)
	if err != nil {
		return nil, capture.Geometry{}, err
	}

	seq, err := capture.ListSession(dir, capture.WithPattern(o.pattern))
	if err != nil {
		return nil, capture.Geometry{}, err
	}
	if err := seq.CheckSizes(g); err != nil {
		return nil, capture.Geometry{}, err
	}

	o.logger.Info("session opened",
		zap.String("dir", dir),
		zap.Stringer("geometry", g),
		zap.Int("files", seq.Len()))
	return seq, g, nil
}

// sessionLabel names output files after the session directory.
func sessionLabel(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

func (o *options) outputPath(dir, suffix string) string {
	return filepath.Join(o.profile.Output.Dir, sessionLabel(dir)+suffix)
}
