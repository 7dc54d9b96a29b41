// Command rdcube reassembles raw radar captures into data cubes and renders
// range-Doppler frames and micro-Doppler spectrograms.
//
// Usage:
//
//	rdcube [flags] <command> [args]
//
// Examples:
//
//	rdcube info data/dca_oct15_1432_trx14_n128xp64_fps10_walk
//	rdcube rangedoppler --profile walk.toml data/dca_oct15_1432_trx14_n128xp64_fps10_walk
//	rdcube microdoppler --units frequency --out plots data/dca_oct15_1432_trx14_n128xp64_fps10_walk
//	rdcube windows --size 64
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
