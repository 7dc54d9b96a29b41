package spectrum_test

import (
	"fmt"

	"github.com/arvindsr33/mm-radar/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleLogScale_Apply() {
	fmt.Printf("%.1f\n", spectrum.DefaultLogScale.Apply(0))
	// Output:
	// -4.0
}
