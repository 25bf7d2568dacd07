// SPDX-License-Identifier: MIT

package score

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// cell layout used by Render: right-aligned width 3 plus a separator
const _fmtCell = "%3d "

// Render writes the grid one row per line, each cell as "%3d ".
// Unpublished cells print as zero.
func (g *Grid) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			if _, err := fmt.Fprintf(bw, _fmtCell, g.data[i*g.cols+j]); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// String renders the grid like Render.
func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.Render(&sb)

	return sb.String()
}

var _ fmt.Stringer = (*Grid)(nil)
