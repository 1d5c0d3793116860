package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/engine"
	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/workspace"
)

func (s *Server) handleApplyAction(ctx context.Context, _ *mcpsdk.CallToolRequest, args ApplyActionInput) (*mcpsdk.CallToolResult, ApplyActionOutput, error) {
	a, err := action.Parse(args.Action)
	if err != nil {
		return nil, ApplyActionOutput{}, err
	}

	var (
		out    engine.Outcome
		runErr error
	)
	err = s.call(ctx, func() {
		if args.DryRun {
			out, runErr = s.engine.Plan(a)
		} else {
			out, runErr = s.engine.Apply(a)
		}
	})
	if err == nil {
		err = runErr
	}
	if err != nil {
		s.logger.Error().Err(err).Stringer("action", a).Bool("dry_run", args.DryRun).Msg("apply_action failed")
		return nil, ApplyActionOutput{}, fmt.Errorf("%s: %w", a, err)
	}

	s.logger.Info().Stringer("action", a).Bool("dry_run", args.DryRun).Str("outcome", out.String()).Msg("apply_action")
	return nil, outcomeOutput(out, !args.DryRun), nil
}

func outcomeOutput(out engine.Outcome, applied bool) ApplyActionOutput {
	res := ApplyActionOutput{
		Action:  out.Action.String(),
		Effect:  out.Effect.String(),
		Applied: applied && out.Effect != engine.EffectNone,
		Reason:  out.Reason,
	}
	switch out.Effect {
	case engine.EffectFrame, engine.EffectOrigin:
		f := frameOf(out.Frame)
		res.Frame = &f
	case engine.EffectFullscreen:
		fullscreen := out.Fullscreen
		res.Fullscreen = &fullscreen
	case engine.EffectWorkspace:
		res.Workspace = out.Workspace.Workspace
		res.Events = make([]string, len(out.Workspace.Events))
		for i, ev := range out.Workspace.Events {
			res.Events[i] = ev.String()
		}
	}
	return res
}

func (s *Server) handleListActions(_ context.Context, _ *mcpsdk.CallToolRequest, args ListActionsInput) (*mcpsdk.CallToolResult, ListActionsOutput, error) {
	family := strings.TrimSpace(args.Family)
	if family != "" && !knownFamily(family) {
		return nil, ListActionsOutput{}, fmt.Errorf("unknown family %q", family)
	}

	var actions []ActionInfo
	for _, a := range action.All() {
		if family != "" && !strings.EqualFold(string(a.Family()), family) {
			continue
		}
		actions = append(actions, ActionInfo{
			Name:        a.String(),
			Title:       a.Title(),
			Family:      string(a.Family()),
			NeedsWindow: a.NeedsWindow(),
		})
	}
	return nil, ListActionsOutput{Actions: actions}, nil
}

func knownFamily(name string) bool {
	for _, f := range action.Families {
		if strings.EqualFold(string(f), name) {
			return true
		}
	}
	return false
}

func (s *Server) handleListDisplays(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	var (
		list   []engine.Display
		runErr error
	)
	if err := s.call(ctx, func() { list, runErr = s.engine.Displays() }); err != nil {
		return nil, ListDisplaysOutput{}, err
	}
	if runErr != nil {
		return nil, ListDisplaysOutput{}, runErr
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, len(list))}
	for i, d := range list {
		out.Displays[i] = DisplayInfo{
			Index:  d.Index,
			Name:   d.Name,
			Frame:  frameOf(d.Frame),
			Usable: frameOf(d.Usable),
			Active: d.Active,
		}
	}
	return nil, out, nil
}

func (s *Server) handleListWorkspaces(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListWorkspacesInput) (*mcpsdk.CallToolResult, ListWorkspacesOutput, error) {
	var (
		entries []workspace.Entry
		runErr  error
	)
	if err := s.call(ctx, func() { entries, runErr = s.engine.Workspaces() }); err != nil {
		return nil, ListWorkspacesOutput{}, err
	}
	if runErr != nil {
		return nil, ListWorkspacesOutput{}, runErr
	}

	out := ListWorkspacesOutput{Workspaces: make([]WorkspaceInfo, len(entries))}
	for i, e := range entries {
		out.Workspaces[i] = WorkspaceInfo{
			Logical: e.Logical,
			Display: e.Display,
			ID:      uint64(e.ID),
			Active:  e.Active,
		}
	}
	return nil, out, nil
}

func frameOf(r geometry.Rect) Frame {
	return Frame{X: r.Origin.X, Y: r.Origin.Y, Width: r.Size.Width, Height: r.Size.Height}
}
