//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"unbounded-life/internal/core"
)

// GridPainter uploads a ByteGrid to a texture and draws it scaled.
type GridPainter struct {
	img     *ebiten.Image
	pixels  []byte
	palette Palette
}

// NewGridPainter allocates a painter for grids of w by h cells.
func NewGridPainter(w, h int, palette Palette) *GridPainter {
	return &GridPainter{
		img:     ebiten.NewImage(w, h),
		pixels:  make([]byte, w*h*4),
		palette: palette,
	}
}

// Blit draws g onto screen with each cell scale pixels wide.
func (p *GridPainter) Blit(screen *ebiten.Image, g *core.ByteGrid, scale int) {
	if scale <= 0 {
		scale = 1
	}
	p.palette.Fill(p.pixels, g.Cells())
	p.img.WritePixels(p.pixels)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
