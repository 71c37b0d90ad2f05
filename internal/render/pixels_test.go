package render

import (
	"image/color"
	"testing"
)

func TestPaletteFill(t *testing.T) {
	p := Palette{On: color.RGBA{R: 1, G: 2, B: 3, A: 4}, Off: color.RGBA{R: 9, A: 255}}
	buf := make([]byte, 12)
	p.Fill(buf, []uint8{1, 0, 5})

	want := []byte{1, 2, 3, 4, 9, 0, 0, 255, 1, 2, 3, 4}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d: got %d want %d (%v)", i, buf[i], want[i], buf)
		}
	}
}
