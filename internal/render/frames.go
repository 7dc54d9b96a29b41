package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// FrameName returns the file name of range-Doppler frame i.
func FrameName(prefix string, i int) string {
	return fmt.Sprintf("%s_rd_%05d.png", prefix, i)
}

// WriteFramePNG encodes img as PNG at path.
func WriteFramePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: close %s: %w", path, cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return nil
}

// FrameWriter numbers frames consecutively across calls.
type FrameWriter struct {
	Dir    string
	Prefix string
	next   int
}

// Write stores img as the next frame and returns its path.
func (w *FrameWriter) Write(img image.Image) (string, error) {
	path := filepath.Join(w.Dir, FrameName(w.Prefix, w.next))
	if err := WriteFramePNG(path, img); err != nil {
		return "", err
	}
	w.next++
	return path, nil
}

// Count returns the number of frames written.
func (w *FrameWriter) Count() int { return w.next }
