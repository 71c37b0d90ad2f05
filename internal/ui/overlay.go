//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"unbounded-life/pkg/cellstate"
)

var boxColor = color.RGBA{R: 90, G: 160, B: 255, A: 255}

// Overlay outlines the live bounding box on top of the cell view.
type Overlay struct {
	scale   int
	visible bool
	rect    image.Rectangle
	hasRect bool
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for views drawn at scale pixels per cell.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles visibility on B and recomputes the outline for state as
// seen through window.
func (o *Overlay) Update(state cellstate.CellState, window cellstate.Rect) {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.visible = !o.visible
	}
	o.hasRect = false
	if !o.visible {
		return
	}
	if bounds, ok := state.BoundingBox(); ok {
		o.rect, o.hasRect = outline(bounds, window, o.scale)
	}
}

// Draw paints the outline.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.hasRect {
		return
	}
	r := o.rect
	o.fill(screen, r.Min.X, r.Min.Y, r.Dx(), 1)
	o.fill(screen, r.Min.X, r.Max.Y-1, r.Dx(), 1)
	o.fill(screen, r.Min.X, r.Min.Y, 1, r.Dy())
	o.fill(screen, r.Max.X-1, r.Min.Y, 1, r.Dy())
}

func (o *Overlay) fill(screen *ebiten.Image, x, y, w, h int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(boxColor)
	screen.DrawImage(o.pixel, op)
}
