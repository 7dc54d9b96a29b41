package reconstruct

import (
	"context"
	"fmt"
	"io"

	"github.com/arvindsr33/mm-radar/radar/capture"
	"github.com/arvindsr33/mm-radar/radar/cube"
	"go.uber.org/zap"
)

type readResult struct {
	index int
	words []int16
	err   error
}

// Stream yields one cube per file of a session, in file order.
type Stream struct {
	seq      *capture.Sequence
	rec      *Reconstructor
	logger   *zap.Logger
	prefetch bool

	next    int
	pending chan readResult
	err     error
	done    bool
}

// NewStream prepares a stream over seq.
func NewStream(seq *capture.Sequence, g capture.Geometry, opts ...Option) (*Stream, error) {
	rec, err := New(g, opts...)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Stream{seq: seq, rec: rec, logger: o.logger, prefetch: o.prefetch}, nil
}

// Next returns the cube for the next file, or io.EOF after the last one.
// Errors are sticky: once Next fails every later call returns the same error.
func (s *Stream) Next(ctx context.Context) (*cube.Cube, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.next >= s.seq.Len() {
		if !s.done {
			s.done = true
			s.rec.Finish()
		}
		return nil, io.EOF
	}

	i := s.next
	words, err := s.read(ctx, i)
	if err != nil {
		s.err = err
		return nil, err
	}

	if s.prefetch && i+1 < s.seq.Len() {
		s.startRead(i + 1)
	}

	c, err := s.rec.Next(s.seq.Name(i), words)
	if err != nil {
		s.err = fmt.Errorf("reconstruct: file %d of %d: %w", i+1, s.seq.Len(), err)
		return nil, s.err
	}

	s.next++
	return c, nil
}

func (s *Stream) startRead(i int) {
	ch := make(chan readResult, 1)
	s.pending = ch
	go func() {
		words, err := s.seq.ReadWords(i)
		ch <- readResult{index: i, words: words, err: err}
	}()
	s.logger.Debug("prefetching", zap.String("file", s.seq.Name(i)))
}

func (s *Stream) read(ctx context.Context, i int) ([]int16, error) {
	if s.pending != nil {
		ch := s.pending
		select {
		case r := <-ch:
			s.pending = nil
			if r.index == i {
				return r.words, r.err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.seq.ReadWords(i)
}

// Stats returns the reconstructor counters.
func (s *Stream) Stats() Stats { return s.rec.Stats() }

// Close waits for an outstanding prefetch to finish.
func (s *Stream) Close() error {
	if s.pending != nil {
		<-s.pending
		s.pending = nil
	}
	return nil
}

// Collect drains the stream and returns every cube. Intended for small
// sessions and tests.
func Collect(ctx context.Context, s *Stream) ([]*cube.Cube, error) {
	defer s.Close()

	var out []*cube.Cube
	for {
		c, err := s.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
}
