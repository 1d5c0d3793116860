package workspace

import (
	"fmt"

	"github.com/1broseidon/wmgr/internal/platform"
)

// Groups is the platform's workspace ids, one left-to-right list per display,
// displays in platform order.
//
// Logical ids number the workspaces from 1 by walking the displays in order,
// then the workspaces within each display.
type Groups [][]platform.WorkspaceID

// Len returns the total number of workspaces.
func (g Groups) Len() int {
	n := 0
	for _, display := range g {
		n += len(display)
	}
	return n
}

// position locates id. It panics when id is not listed: the active workspace
// always belongs to some display, so a miss means the platform lied.
func (g Groups) position(id platform.WorkspaceID) (display, index, logical int) {
	logical = 1
	for d, workspaces := range g {
		for i, ws := range workspaces {
			if ws == id {
				return d, i, logical
			}
			logical++
		}
	}
	panic(fmt.Sprintf("workspace %d is not in the workspace list %v", id, [][]platform.WorkspaceID(g)))
}

// LogicalID returns the 1-based logical id of active.
func (g Groups) LogicalID(active platform.WorkspaceID) int {
	_, _, logical := g.position(active)
	return logical
}

// Display returns the index of the display that owns active.
func (g Groups) Display(active platform.WorkspaceID) int {
	display, _, _ := g.position(active)
	return display
}

// Next returns the logical id after active. ok is false when active is the
// last workspace of its display; the index never crosses to another display.
func (g Groups) Next(active platform.WorkspaceID) (id int, ok bool) {
	display, index, logical := g.position(active)
	if index == len(g[display])-1 {
		return 0, false
	}
	return logical + 1, true
}

// Previous returns the logical id before active. ok is false when active is
// the first workspace of its display.
func (g Groups) Previous(active platform.WorkspaceID) (id int, ok bool) {
	_, index, logical := g.position(active)
	if index == 0 {
		return 0, false
	}
	return logical - 1, true
}

// Entry describes one workspace for listings.
type Entry struct {
	Logical int
	Display int
	ID      platform.WorkspaceID
	Active  bool
}

// Entries flattens g in logical order, marking active.
func (g Groups) Entries(active platform.WorkspaceID) []Entry {
	out := make([]Entry, 0, g.Len())
	logical := 1
	for d, workspaces := range g {
		for _, ws := range workspaces {
			out = append(out, Entry{Logical: logical, Display: d, ID: ws, Active: ws == active})
			logical++
		}
	}
	return out
}

// Query reads the active workspace and the groups from src.
func Query(src platform.WorkspaceSource) (Groups, platform.WorkspaceID, error) {
	groups, err := src.WorkspaceGroups()
	if err != nil {
		return nil, 0, fmt.Errorf("list workspaces: %w", err)
	}
	active, err := src.ActiveWorkspace()
	if err != nil {
		return nil, 0, fmt.Errorf("read active workspace: %w", err)
	}
	return Groups(groups), active, nil
}
