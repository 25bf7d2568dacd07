// Package wavealign computes optimal global alignments of two sequences
// with a parallel anti-diagonal (wavefront) Needleman–Wunsch fill.
//
// 🚀 What is inside?
//
//	A small engine and its CLI, organized as:
//		• sequence/  immutable symbol buffers, file reading, random generation
//		• score/     the write-once score grid with per-anti-diagonal wait gates
//		• wavefront/ worker partitions (diagonal ranges, row bands, cursor) and the fixed pool
//		• nw/        recurrence, Align, traceback and the sequential reference fill
//		• config/    YAML run configuration
//		• metrics/   Prometheus collectors for runs
//		• cmd/wavealign  the command-line front end
//
// ✨ How a run flows:
//
//	x, y ──► wavefront.NewPlan ──► score.NewGrid (boundary published)
//	     ──► wavefront.Run: W workers, each cell waits on ↖ ↑ ← then publishes
//	     ──► nw.Traceback from (lenX,lenY) to (0,0)
//
// Cells on one anti-diagonal k = i+j are independent; a cell on k only waits
// on cells of k-1 and k-2, so any partition that covers every cell exactly
// once completes without deadlock.
//
// Quick example:
//
//	res, err := nw.Align(ctx, sequence.FromString("GATTACA"), sequence.FromString("GCATGCU"),
//	    nw.WithGap(-1), nw.WithWorkers(4))
//	// res.Score == 0
//	// res.Alignment.String() == "G-ATTACA\nGCA-TGCU"
//
//	go install github.com/katalvlaran/wavealign/cmd/wavealign@latest
package wavealign
