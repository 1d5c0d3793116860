package mcp

// ApplyActionInput is the input for the apply_action tool.
type ApplyActionInput struct {
	Action string `json:"action" jsonschema:"required,Action name in snake_case (e.g. left_half, next_display, next_desktop). See list_actions."`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"When true, compute the outcome without moving the window or posting input (default: false)"`
}

// Frame is a rectangle in flipped coordinates (top-left origin, y down).
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ApplyActionOutput is the output for the apply_action tool.
type ApplyActionOutput struct {
	Action     string   `json:"action"`
	Effect     string   `json:"effect"`
	Applied    bool     `json:"applied"`
	Frame      *Frame   `json:"frame,omitempty"`
	Fullscreen *bool    `json:"fullscreen,omitempty"`
	Workspace  int      `json:"workspace,omitempty"`
	Events     []string `json:"events,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

// ListActionsInput is the input for the list_actions tool.
type ListActionsInput struct {
	Family string `json:"family,omitempty" jsonschema:"Only list actions of this family (e.g. Halves, Thirds, Move)"`
}

// ActionInfo describes one action.
type ActionInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Family      string `json:"family"`
	NeedsWindow bool   `json:"needs_window"`
}

// ListActionsOutput is the output for the list_actions tool.
type ListActionsOutput struct {
	Actions []ActionInfo `json:"actions"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayInfo describes one display.
type DisplayInfo struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Frame  Frame  `json:"frame"`
	Usable Frame  `json:"usable"`
	Active bool   `json:"active"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// ListWorkspacesInput is the input for the list_workspaces tool.
type ListWorkspacesInput struct{}

// WorkspaceInfo describes one workspace.
type WorkspaceInfo struct {
	Logical int    `json:"logical"`
	Display int    `json:"display"`
	ID      uint64 `json:"id"`
	Active  bool   `json:"active"`
}

// ListWorkspacesOutput is the output for the list_workspaces tool.
type ListWorkspacesOutput struct {
	Workspaces []WorkspaceInfo `json:"workspaces"`
}
