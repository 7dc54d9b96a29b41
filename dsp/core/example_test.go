package core_test

import (
	"fmt"

	"github.com/arvindsr33/mm-radar/dsp/core"
)

func ExampleFlooredLog() {
	fmt.Printf("%.1f %.1f\n", core.FlooredLog(0, 1e-4, 10), core.FlooredLog(100-1e-4, 1e-4, 10))

	// Output:
	// -4.0 2.0
}

func ExampleClamp() {
	fmt.Println(core.Clamp(1.7, 0, 1), core.Clamp(-3, 0, 1), core.Clamp(0.25, 1, 0))

	// Output:
	// 1 0 0.25
}
