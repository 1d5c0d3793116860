package x11

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Area is a rectangle in root window coordinates (top-left origin).
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (a Area) empty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// Monitor represents a physical display
type Monitor struct {
	ID      int
	Name    string
	Primary bool
	Bounds  Area
	// Work is Bounds minus panels and docks.
	Work Area
}

// GetMonitors retrieves all active monitors using XRandR. The primary output
// comes first; the rest keep CRTC order.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	// Get screen resources
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		isPrimary := false
		for _, out := range crtcInfo.Outputs {
			if primary != 0 && out == primary {
				isPrimary = true
				break
			}
		}

		bounds := Area{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    outputName,
			Primary: isPrimary,
			Bounds:  bounds,
			Work:    bounds,
		})
	}

	sort.SliceStable(monitors, func(i, j int) bool {
		return monitors[i].Primary && !monitors[j].Primary
	})

	for i := range monitors {
		monitors[i].Work = c.workArea(monitors[i].Bounds)
	}

	return monitors, nil
}

// workArea shrinks bounds by the dock struts that touch it, falling back to
// the intersection with _NET_WORKAREA when no dock reserves space.
func (c *Connection) workArea(bounds Area) Area {
	if work, applied := applyDockStruts(c, bounds); applied {
		return work
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return bounds
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}

	wa := workArea[desktopIndex]
	isect := intersect(bounds, Area{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)})
	if isect.empty() {
		return bounds
	}
	return isect
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func applyDockStruts(c *Connection, bounds Area) (Area, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return bounds, false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return bounds, false
	}

	var struts dockStruts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			updateStruts(bounds, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			updateStruts(bounds, rootWidth, rootHeight, fullStrut(s, rootWidth, rootHeight), &struts)
		}
	}

	return shrink(bounds, struts)
}

func fullStrut(s *ewmh.WmStrut, rootWidth, rootHeight int) *ewmh.WmStrutPartial {
	return &ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(rootHeight - 1),
		RightStartY:  0,
		RightEndY:    uint(rootHeight - 1),
		TopStartX:    0,
		TopEndX:      uint(rootWidth - 1),
		BottomStartX: 0,
		BottomEndX:   uint(rootWidth - 1),
	}
}

func shrink(bounds Area, struts dockStruts) (Area, bool) {
	if struts.left == 0 && struts.right == 0 && struts.top == 0 && struts.bottom == 0 {
		return bounds, false
	}

	work := bounds
	work.X += struts.left
	work.Y += struts.top
	work.Width -= struts.left + struts.right
	work.Height -= struts.top + struts.bottom

	if work.Width < 1 {
		work.Width = 1
	}
	if work.Height < 1 {
		work.Height = 1
	}
	return work, true
}

func updateStruts(mon Area, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		strut := spanning(int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
		acc.top = max(acc.top, intersect(mon, strut).Height)
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		strut := spanning(int(sp.BottomStartX), rootHeight-int(sp.Bottom), int(sp.BottomEndX)+1, rootHeight)
		acc.bottom = max(acc.bottom, intersect(mon, strut).Height)
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		strut := spanning(0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
		acc.left = max(acc.left, intersect(mon, strut).Width)
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		strut := spanning(rootWidth-int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY)+1)
		acc.right = max(acc.right, intersect(mon, strut).Width)
	}
}

func spanning(x1, y1, x2, y2 int) Area {
	return Area{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// intersect returns the overlap of a and b, or the zero Area.
func intersect(a, b Area) Area {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)

	if x2 <= x1 || y2 <= y1 {
		return Area{}
	}
	return Area{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
