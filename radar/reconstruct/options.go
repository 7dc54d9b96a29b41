package reconstruct

import (
	"slices"

	"go.uber.org/zap"
)

// Option configures a [Reconstructor] or [Stream].
type Option func(*options)

type options struct {
	logger   *zap.Logger
	header   []int16
	prefetch bool
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger sets the logger used for per-file debug output and the
// trailing-data warning.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReferenceHeader supplies the expected header instead of taking it from
// the first file. Its length must equal the geometry's HeaderWords.
func WithReferenceHeader(h []int16) Option {
	return func(o *options) {
		o.header = slices.Clone(h)
	}
}

// WithPrefetch makes a [Stream] read the next file in the background while
// the caller processes the current cube. It has no effect on a Reconstructor.
func WithPrefetch() Option {
	return func(o *options) {
		o.prefetch = true
	}
}
