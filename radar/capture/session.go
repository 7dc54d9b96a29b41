package capture

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// DefaultPattern matches the raw ADC files written by the capture card.
const DefaultPattern = "datacard_record_hdr_0ADC*.bin"

// ListOption configures [ListSession].
type ListOption func(*listConfig)

type listConfig struct {
	pattern string
}

// WithPattern overrides the file glob used to find capture files.
func WithPattern(pattern string) ListOption {
	return func(c *listConfig) {
		c.pattern = pattern
	}
}

// Sequence is the ordered list of capture files of one session.
type Sequence struct {
	dir   string
	files []string
}

// NewSequence wraps an already ordered list of file paths.
func NewSequence(files ...string) (*Sequence, error) {
	if len(files) == 0 {
		return nil, &IncompleteSessionError{Dir: "(explicit file list)"}
	}
	return &Sequence{files: slices.Clone(files)}, nil
}

// ListSession finds the capture files in dir and orders them by the numeric
// suffix of their base name (..._0ADC.bin, ..._0ADC_1.bin, ...). A file with
// no suffix has index 0.
func ListSession(dir string, opts ...ListOption) (*Sequence, error) {
	cfg := listConfig{pattern: DefaultPattern}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, cfg.pattern))
	if err != nil {
		return nil, &ConfigError{Detail: fmt.Sprintf("bad file pattern %q: %v", cfg.pattern, err)}
	}
	if len(matches) == 0 {
		return nil, &IncompleteSessionError{Dir: dir}
	}

	type indexed struct {
		path  string
		index int
	}

	files := make([]indexed, 0, len(matches))
	seen := make(map[int]string, len(matches))
	for _, m := range matches {
		idx, ok := fileIndex(m)
		if !ok {
			if len(matches) > 1 {
				return nil, &ConfigError{Detail: fmt.Sprintf("cannot order %s: no numeric suffix", filepath.Base(m))}
			}
			idx = 0
		}
		if prev, dup := seen[idx]; dup {
			return nil, &ConfigError{Detail: fmt.Sprintf("ambiguous order: %s and %s both have index %d",
				filepath.Base(prev), filepath.Base(m), idx)}
		}
		seen[idx] = m
		files = append(files, indexed{path: m, index: idx})
	}

	slices.SortFunc(files, func(a, b indexed) int { return a.index - b.index })

	seq := &Sequence{dir: dir, files: make([]string, len(files))}
	for i, f := range files {
		seq.files[i] = f.path
	}
	return seq, nil
}

// fileIndex extracts the numeric suffix of a capture file name. A name
// ending directly in "ADC" has index 0.
func fileIndex(path string) (int, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.HasSuffix(stem, "ADC") {
		return 0, true
	}

	i := strings.LastIndexByte(stem, '_')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Dir returns the session directory, or "" for an explicit file list.
func (s *Sequence) Dir() string { return s.dir }

// Files returns the ordered file paths.
func (s *Sequence) Files() []string { return slices.Clone(s.files) }

// Len returns the number of files.
func (s *Sequence) Len() int { return len(s.files) }

// Name returns the path of file i.
func (s *Sequence) Name(i int) string { return s.files[i] }

// ReadWords reads file i as little-endian int16 words.
func (s *Sequence) ReadWords(i int) ([]int16, error) {
	if i < 0 || i >= len(s.files) {
		return nil, fmt.Errorf("capture: file index %d out of range [0,%d)", i, len(s.files))
	}
	return ReadWordsFile(s.files[i])
}

// ReadWordsFile reads one capture file as little-endian int16 words.
func ReadWordsFile(path string) ([]int16, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("capture: read %s: %w", path, err)
	}
	if len(raw)%2 != 0 {
		return nil, &GeometryMismatchError{
			File:   path,
			Words:  int64(len(raw) / 2),
			Detail: fmt.Sprintf("odd byte length %d", len(raw)),
		}
	}

	words := make([]int16, len(raw)/2)
	for i := range words {
		words[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return words, nil
}

// TotalWords sums the word counts of all files without reading them.
func (s *Sequence) TotalWords() (int64, error) {
	var total int64
	for _, f := range s.files {
		st, err := os.Stat(f)
		if err != nil {
			return 0, fmt.Errorf("capture: stat %s: %w", f, err)
		}
		total += st.Size() / 2
	}
	return total, nil
}

// CheckSizes verifies that the session is large enough to hold one validated
// packet boundary, i.e. at least one packet plus a header.
func (s *Sequence) CheckSizes(g Geometry) error {
	total, err := s.TotalWords()
	if err != nil {
		return err
	}

	need := int64(g.PacketLen() + g.HeaderWords)
	if total < need {
		return &GeometryMismatchError{
			File:   s.sessionName(),
			Words:  total,
			Detail: fmt.Sprintf("session holds fewer than %d words (one packet plus header)", need),
		}
	}
	return nil
}

func (s *Sequence) sessionName() string {
	if s.dir != "" {
		return s.dir
	}
	return s.files[0]
}

// FrameCount returns the number of complete frames in the session.
func (s *Sequence) FrameCount(g Geometry) (int64, error) {
	total, err := s.TotalWords()
	if err != nil {
		return 0, err
	}
	return total / int64(g.FrameLen()), nil
}

// WriteWordsFile writes words as a little-endian capture file.
func WriteWordsFile(path string, words []int16) error {
	raw := make([]byte, 2*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(w))
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("capture: write %s: %w", path, err)
	}
	return nil
}
