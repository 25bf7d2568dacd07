// SPDX-License-Identifier: MIT

// Package nw computes global (Needleman–Wunsch) alignments of two sequences
// with a parallel wavefront fill and a deterministic traceback.
//
// 🚀 Recurrence:
//
//	S[i][0] = i·gap, S[0][j] = j·gap
//	S[i][j] = max( S[i-1][j-1] + sub(X[i-1], Y[j-1]),   // Diagonal
//	               S[i-1][j]   + gap,                    // Up    (gap in Y)
//	               S[i][j-1]   + gap )                   // Left  (gap in X)
//	sub(a,b) = match if a == b, else mismatch
//
// Ties are broken Diagonal > Up > Left, in the evaluator and in the
// traceback alike, so the recovered alignment always explains the score.
//
// ✨ Pipeline:
//  1. wavefront.NewPlan validates the worker partition (configuration errors).
//  2. score.NewGrid publishes the boundary row and column.
//  3. wavefront.Run drives a fixed pool; each cell blocks on its three
//     neighbours through score.Grid.Get and publishes its own value.
//  4. After the pool joins, Traceback walks (lenX,lenY) → (0,0).
//
// ⚙️ Usage:
//
//	res, err := nw.Align(ctx,
//	    sequence.FromString("GATTACA"), sequence.FromString("GCATGCU"),
//	    nw.WithWorkers(4), nw.WithTimeout(time.Minute))
//	if err != nil { ... }
//	fmt.Println(res.Score, res.Alignment)
//
// Errors:
//   - wavefront.ErrInvalidWorkers / ErrBadPartition: configuration, before any worker starts.
//   - wavefront.ErrDeadline: liveness failure, the fill outlived WithTimeout.
//   - ErrIntegrity: the matrix disagrees with the recurrence during traceback.
//
// Complexity:
//
//   - Time:   O(n·m / workers) fill + O(n+m) traceback.
//   - Memory: O(n·m) cells + O(n+m) wait gates.
package nw
