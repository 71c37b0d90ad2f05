package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"unbounded-life/pkg/cellstate"
)

// Serialize encodes state so that Parse returns an equal state with no
// diagnostics.
func Serialize(state cellstate.CellState) string {
	var b strings.Builder
	_ = Write(&b, state)
	return b.String()
}

// Write encodes state to w: the header, the normal-rules line, then one #P
// block per band of consecutive non-empty rows.
func Write(w io.Writer, state cellstate.CellState) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	fmt.Fprintln(bw, "#N")
	for _, band := range bands(state) {
		writeBand(bw, band)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("pattern: write: %w", err)
	}
	return nil
}

// band is a run of rows with no empty row between them, in row-major order.
type band struct {
	top, bottom int
	left, right int
	cells       []cellstate.Coord
}

func bands(state cellstate.CellState) []band {
	var out []band
	var cur *band
	for c := range state.Cells() {
		if cur == nil || c.Y > cur.bottom+1 {
			out = append(out, band{top: c.Y, bottom: c.Y, left: c.X, right: c.X})
			cur = &out[len(out)-1]
		}
		cur.bottom = c.Y
		cur.left = min(cur.left, c.X)
		cur.right = max(cur.right, c.X)
		cur.cells = append(cur.cells, c)
	}
	return out
}

func writeBand(w *bufio.Writer, b band) {
	fmt.Fprintf(w, "#P %d %d\n", b.left, b.top)
	width := b.right - b.left + 1
	line := make([]byte, width)
	i := 0
	for y := b.top; y <= b.bottom; y++ {
		for x := range line {
			line[x] = '.'
		}
		for ; i < len(b.cells) && b.cells[i].Y == y; i++ {
			line[b.cells[i].X-b.left] = 'O'
		}
		w.Write(line)
		w.WriteByte('\n')
	}
}
