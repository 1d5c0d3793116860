package mcp

import (
	"context"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/engine"
	"github.com/1broseidon/wmgr/internal/workspace"
)

const (
	ServerName    = "wmgr"
	ServerVersion = "0.1.0"
)

// Engine is the part of engine.Engine the server drives.
type Engine interface {
	Plan(a action.Action) (engine.Outcome, error)
	Apply(a action.Action) (engine.Outcome, error)
	Displays() ([]engine.Display, error)
	Workspaces() ([]workspace.Entry, error)
}

// Dispatcher runs f on the thread the window system requires.
// mainthread.Call satisfies it.
type Dispatcher func(ctx context.Context, f func()) error

// Direct runs f on the calling goroutine.
func Direct(_ context.Context, f func()) error {
	f()
	return nil
}

// Server is the MCP server exposing the placement engine.
type Server struct {
	mcpServer *mcpsdk.Server
	engine    Engine
	dispatch  Dispatcher
	logger    zerolog.Logger

	// mu serializes engine calls: the engine is not reentrant.
	mu sync.Mutex
}

// NewServer creates a server whose engine calls go through dispatch.
func NewServer(e Engine, dispatch Dispatcher, logger zerolog.Logger) *Server {
	if dispatch == nil {
		dispatch = Direct
	}
	s := &Server{
		engine:   e,
		dispatch: dispatch,
		logger:   logger.With().Str("component", "mcp").Logger(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_action",
		Description: "Move or resize the focused window with a named action (e.g. left_half, top_right_quarter, center, next_display, next_desktop, toggle_fullscreen). With dry_run the outcome is computed but nothing changes. Returns the resulting frame in top-left-origin coordinates, or the destination workspace.",
	}, s.handleApplyAction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_actions",
		Description: "List every action name accepted by apply_action, grouped by family.",
	}, s.handleListActions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the attached displays in platform order with their frames and usable areas, marking the one holding the focused window.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List the virtual desktops with their logical ids (numbered from 1 across displays), marking the active one.",
	}, s.handleListWorkspaces)
}

// call runs f through the dispatcher, one engine call at a time.
func (s *Server) call(ctx context.Context, f func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, f)
}
