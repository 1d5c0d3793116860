package mcp

import (
	"context"
	"errors"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/engine"
	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/1broseidon/wmgr/internal/platform/platformtest"
	"github.com/1broseidon/wmgr/internal/tiling"
)

func newTestServer(fake *platformtest.Backend) *Server {
	return NewServer(engine.New(fake, tiling.DefaultTable(), zerolog.Nop()), Direct, zerolog.Nop())
}

func TestApplyActionDryRunWritesNothing(t *testing.T) {
	fake := platformtest.New()
	s := newTestServer(fake)

	_, out, err := s.handleApplyAction(context.Background(), nil, ApplyActionInput{Action: "Left_Half", DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, "left_half", out.Action)
	assert.Equal(t, "frame", out.Effect)
	assert.False(t, out.Applied)
	require.NotNil(t, out.Frame)
	assert.Equal(t, Frame{X: 0, Y: 0, Width: 500, Height: 800}, *out.Frame)
	assert.Zero(t, fake.Writes())
}

func TestApplyActionWrites(t *testing.T) {
	fake := platformtest.New()
	s := newTestServer(fake)

	_, out, err := s.handleApplyAction(context.Background(), nil, ApplyActionInput{Action: "maximize"})
	require.NoError(t, err)

	assert.True(t, out.Applied)
	assert.Equal(t, []geometry.Rect{geometry.NewRect(0, 0, 1000, 800)}, fake.FrameWrites)
}

func TestApplyActionWorkspace(t *testing.T) {
	fake := platformtest.New()
	fake.HotKeys[119] = platform.HotKey{Code: 19}
	s := newTestServer(fake)

	_, out, err := s.handleApplyAction(context.Background(), nil, ApplyActionInput{Action: "next_desktop", DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, "workspace", out.Effect)
	assert.Equal(t, 2, out.Workspace)
	assert.Len(t, out.Events, 6)
	assert.Empty(t, fake.Events)
}

func TestApplyActionErrors(t *testing.T) {
	fake := platformtest.New()
	s := newTestServer(fake)

	_, _, err := s.handleApplyAction(context.Background(), nil, ApplyActionInput{Action: "sideways"})
	assert.Error(t, err)

	_, _, err = s.handleApplyAction(context.Background(), nil, ApplyActionInput{Action: "restore"})
	assert.ErrorIs(t, err, platform.ErrNotImplemented)
}

func TestApplyActionDispatcherFailure(t *testing.T) {
	fake := platformtest.New()
	stopped := errors.New("stopped")
	s := NewServer(engine.New(fake, tiling.DefaultTable(), zerolog.Nop()), func(context.Context, func()) error {
		return stopped
	}, zerolog.Nop())

	_, _, err := s.handleApplyAction(context.Background(), nil, ApplyActionInput{Action: "maximize"})
	assert.ErrorIs(t, err, stopped)
	assert.Zero(t, fake.Writes())
}

func TestListActions(t *testing.T) {
	s := newTestServer(platformtest.New())

	_, out, err := s.handleListActions(context.Background(), nil, ListActionsInput{})
	require.NoError(t, err)
	assert.Len(t, out.Actions, len(action.All()))

	_, out, err = s.handleListActions(context.Background(), nil, ListActionsInput{Family: "halves"})
	require.NoError(t, err)
	names := make([]string, len(out.Actions))
	for i, a := range out.Actions {
		names[i] = a.Name
	}
	assert.Contains(t, names, "left_half")
	assert.NotContains(t, names, "maximize")

	_, _, err = s.handleListActions(context.Background(), nil, ListActionsInput{Family: "nonsense"})
	assert.Error(t, err)
}

func TestListDisplaysAndWorkspaces(t *testing.T) {
	fake := platformtest.New()
	fake.Workspaces = [][]platform.WorkspaceID{{4, 5}}
	fake.Active = 5
	s := newTestServer(fake)

	_, displays, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	require.NoError(t, err)
	require.Len(t, displays.Displays, 1)
	assert.True(t, displays.Displays[0].Active)
	assert.Equal(t, Frame{Width: 1000, Height: 800}, displays.Displays[0].Usable)

	_, workspaces, err := s.handleListWorkspaces(context.Background(), nil, ListWorkspacesInput{})
	require.NoError(t, err)
	require.Len(t, workspaces.Workspaces, 2)
	assert.Equal(t, WorkspaceInfo{Logical: 2, Display: 0, ID: 5, Active: true}, workspaces.Workspaces[1])
}

func TestServerOverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	fake := platformtest.New()
	s := newTestServer(fake)

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	serverSession, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "apply_action",
		Arguments: map[string]any{"action": "right_half", "dry_run": true},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Zero(t, fake.Writes())

	res, err = session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "apply_action",
		Arguments: map[string]any{"action": "restore"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
