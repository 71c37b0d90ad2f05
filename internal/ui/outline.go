package ui

import (
	"image"

	"unbounded-life/pkg/cellstate"
)

// outline returns the screen rectangle, in pixels, covering bounds as seen
// through window at the given scale, clipped to the window. ok is false when
// bounds lies entirely outside.
func outline(bounds, window cellstate.Rect, scale int) (r image.Rectangle, ok bool) {
	left, top := max(bounds.Left, window.Left), max(bounds.Top, window.Top)
	right, bottom := min(bounds.Right, window.Right), min(bounds.Bottom, window.Bottom)
	if left > right || top > bottom {
		return image.Rectangle{}, false
	}
	return image.Rect(
		(left-window.Left)*scale,
		(top-window.Top)*scale,
		(right-window.Left+1)*scale,
		(bottom-window.Top+1)*scale,
	), true
}
