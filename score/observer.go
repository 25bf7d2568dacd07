// SPDX-License-Identifier: MIT

package score

// Observer receives cell events from a Grid. It is meant for instrumented
// runs (ordering checks, tracing); the fill does not need one.
//
// Contract:
//   - OnPublish(i,j,v) runs on the writer goroutine before the cell becomes
//     visible, so it happens-before every OnRead of the same cell.
//   - OnRead(i,j,v) runs on the reader goroutine after Get obtained v.
//     Boundary reads are reported too.
//   - Implementations must be safe for concurrent use.
type Observer interface {
	OnPublish(i, j, v int)
	OnRead(i, j, v int)
}
