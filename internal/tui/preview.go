package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/tiling"
)

// previewUsable is the nominal 16:9 screen previews are computed on.
var previewUsable = geometry.NewRect(0, 0, 1920, 1080)

// previewWindow is the nominal current window for window-relative actions.
var previewWindow = geometry.NewRect(480, 270, 960, 540)

// describe explains actions the preview cannot draw.
func describe(table tiling.Table, a action.Action) string {
	switch a.Kind() {
	case action.KindDisplay:
		return "Moves the window to fill the usable area of the " + strings.TrimSuffix(a.String(), "_display") + " display."
	case action.KindDesktop:
		return "Carries the window to the " + strings.TrimSuffix(a.String(), "_desktop") + " desktop of the same display."
	case action.KindFullscreen:
		return "Toggles the window's fullscreen state."
	case action.KindRestore:
		return "Not implemented."
	}
	p, err := table.Place(a, previewUsable, &previewWindow)
	if err != nil {
		return err.Error()
	}
	f := p.Frame
	return fmt.Sprintf("On a 1920×1080 screen: %.0f×%.0f at (%.0f, %.0f)", f.Size.Width, f.Size.Height, f.Origin.X, f.Origin.Y)
}

// renderPreview draws the screen with the window's resulting frame.
// Window-relative actions also show the nominal starting window dotted.
func renderPreview(table tiling.Table, a action.Action, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	drawBorder(canvas, width, height)

	p, err := table.Place(a, previewUsable, &previewWindow)
	if err != nil {
		return toLines(canvas)
	}
	if a.NeedsWindow() {
		drawFrame(canvas, previewWindow, width, height, '·', '·', '·', '·', '·', '·')
	}
	drawFrame(canvas, p.Frame, width, height, '─', '│', '┌', '┐', '└', '┘')
	return toLines(canvas)
}

// drawFrame maps r from previewUsable onto the canvas interior.
func drawFrame(canvas [][]rune, r geometry.Rect, canvasW, canvasH int, horiz, vert, tl, tr, bl, br rune) {
	sx := float64(canvasW-1) / previewUsable.Size.Width
	sy := float64(canvasH-1) / previewUsable.Size.Height

	x1 := clamp(int(r.MinX()*sx), 1, canvasW-2)
	y1 := clamp(int(r.MinY()*sy), 1, canvasH-2)
	x2 := clamp(int(r.MaxX()*sx), 1, canvasW-2)
	y2 := clamp(int(r.MaxY()*sy), 1, canvasH-2)
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = horiz
		canvas[y2][x] = horiz
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = vert
		canvas[y][x2] = vert
	}
	canvas[y1][x1] = tl
	canvas[y1][x2] = tr
	canvas[y2][x1] = bl
	canvas[y2][x2] = br
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func toLines(canvas [][]rune) []string {
	lines := make([]string, len(canvas))
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, max(height, 0))
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
