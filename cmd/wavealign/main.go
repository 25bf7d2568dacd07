// SPDX-License-Identifier: MIT

// Command wavealign aligns two sequences with the parallel wavefront
// Needleman–Wunsch engine.
//
// Usage:
//
//	wavealign align --seq-x GATTACA --seq-y GCATGCU --workers 4
//	wavealign align --x a.fa --y b.fa --strategy rows --metrics-file run.prom
//	wavealign generate --length 10000 --seed 7 --out a.fa
//	wavealign version
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
