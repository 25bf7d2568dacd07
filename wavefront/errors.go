// SPDX-License-Identifier: MIT

package wavefront

import "errors"

var (
	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("wavefront: worker count must be positive")

	// ErrInvalidLength indicates a negative sequence length.
	ErrInvalidLength = errors.New("wavefront: sequence length must be non-negative")

	// ErrUnknownStrategy indicates a Strategy value or name that is not defined.
	ErrUnknownStrategy = errors.New("wavefront: unknown strategy")

	// ErrBadPartition indicates worker ranges that do not cover the cell set
	// exactly once (gap, overlap, empty or out-of-order range).
	ErrBadPartition = errors.New("wavefront: partition does not cover cells exactly once")

	// ErrDeadline indicates the fill did not finish before its deadline.
	// It is the liveness failure report: the deadline error is wrapped too.
	ErrDeadline = errors.New("wavefront: fill deadline exceeded")
)
