//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"unbounded-life/internal/core"
)

const (
	panelPadding = 10
	lineHeight   = 16
	groupGap     = 8
)

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor  = color.RGBA{R: 230, G: 230, B: 240, A: 255}
)

var keyHelp = []string{
	"space  pause",
	"n      next (paused)",
	"a      switch algorithm",
	"arrows pan",
	"b      bounding box",
	"r      restart",
	"q      quit",
}

// HUD renders the status panel to the right of the cell view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update stores the snapshot to draw on the next frame.
func (h *HUD) Update(snapshot core.ParameterSnapshot) {
	if h == nil {
		return
	}
	h.snapshot = snapshot
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	for _, group := range h.snapshot.Groups {
		text.Draw(h.panel, group.Name, face, panelPadding, y, headerColor)
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, valueColor)
			y += lineHeight
		}
		y += groupGap
	}
	for _, line := range keyHelp {
		text.Draw(h.panel, line, face, panelPadding, y, labelColor)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
