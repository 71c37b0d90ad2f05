//go:build !ebiten

package ui

import "unbounded-life/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(int) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(core.ParameterSnapshot) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
