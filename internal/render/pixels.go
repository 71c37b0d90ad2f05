// Package render turns rasterized cell grids into pixels.
package render

import "image/color"

// Palette maps binary cell values to colours.
type Palette struct {
	On  color.RGBA
	Off color.RGBA
}

// DefaultPalette draws live cells white on near-black.
var DefaultPalette = Palette{
	On:  color.RGBA{R: 240, G: 240, B: 240, A: 255},
	Off: color.RGBA{R: 8, G: 8, B: 12, A: 255},
}

// Fill converts binary cell data (0/1) into RGBA pixels in buf, which must
// hold 4 bytes per cell.
func (p Palette) Fill(buf []byte, cells []uint8) {
	for i, c := range cells {
		col := p.Off
		if c != 0 {
			col = p.On
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
