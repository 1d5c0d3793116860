package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/wmgr/internal/geometry"
	"github.com/1broseidon/wmgr/internal/hotkeys"
	"github.com/1broseidon/wmgr/internal/platform"
	"github.com/1broseidon/wmgr/internal/platform/platformtest"
)

// execute runs the command tree against fake with a config path that does
// not exist, so the built-in defaults apply.
func execute(t *testing.T, fake *platformtest.Backend, args ...string) (string, error) {
	t.Helper()

	prev := openBackend
	openBackend = func(platform.Options) (platform.Backend, error) { return fake, nil }
	t.Cleanup(func() { openBackend = prev })

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestApplyAction(t *testing.T) {
	fake := platformtest.New()

	_, err := execute(t, fake, "left_half")
	require.NoError(t, err)

	assert.Equal(t, []geometry.Rect{geometry.NewRect(0, 0, 500, 800)}, fake.FrameWrites)
	assert.True(t, fake.Closed)
}

func TestApplyActionNameIsCaseInsensitive(t *testing.T) {
	fake := platformtest.New()

	_, err := execute(t, fake, "Top-Half")
	require.NoError(t, err)

	assert.Equal(t, []geometry.Rect{geometry.NewRect(0, 0, 1000, 400)}, fake.FrameWrites)
}

func TestDryRunWritesNothing(t *testing.T) {
	fake := platformtest.New()

	out, err := execute(t, fake, "--dry-run", "left_half")
	require.NoError(t, err)

	assert.Contains(t, out, "left_half: frame {origin:(0,0) size:(500,800)}")
	assert.Zero(t, fake.Writes())
}

func TestUnknownAction(t *testing.T) {
	fake := platformtest.New()

	_, err := execute(t, fake, "sideways")
	require.Error(t, err)

	assert.Contains(t, err.Error(), `unknown action "sideways"`)
	assert.Zero(t, fake.Writes())
}

func TestApplyActionFailure(t *testing.T) {
	fake := platformtest.New()
	fake.NoWindow = true

	_, err := execute(t, fake, "maximize")
	require.ErrorIs(t, err, platform.ErrNoFocusedWindow)
}

func TestList(t *testing.T) {
	out, err := execute(t, platformtest.New(), "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Halves")
	assert.Contains(t, out, "  top_left_quarter\n")
	assert.Contains(t, out, "  toggle_fullscreen\n")
	assert.Less(t, strings.Index(out, "Halves"), strings.Index(out, "Quarters"))
}

func TestDisplays(t *testing.T) {
	fake := platformtest.New()
	fake.Frames = append(fake.Frames, geometry.NewRect(1000, 0, 800, 600))
	fake.Usable = append(fake.Usable, geometry.NewRect(1000, 0, 800, 600))

	out, err := execute(t, fake, "displays")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "*"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], " "), lines[2])
	assert.Contains(t, lines[2], "{origin:(1000,200) size:(800,600)}")
}

func TestWorkspaces(t *testing.T) {
	fake := platformtest.New()
	fake.Workspaces = [][]platform.WorkspaceID{{11, 12}, {21}}
	fake.Active = 21

	out, err := execute(t, fake, "workspaces")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"*", "3", "1", "21"}, strings.Fields(lines[3]))
}

func TestConfigPathHonoursFlag(t *testing.T) {
	out, err := execute(t, platformtest.New(), "config", "path")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "config.yaml"))
}

func TestConfigInitThenExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wmgr", "config.yaml")

	_, err := execute(t, platformtest.New(), "--config", path, "config", "init")
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err := execute(t, platformtest.New(), "--config", path, "config", "explain", "move_step")
	require.NoError(t, err)
	assert.Contains(t, out, "move_step = 10")
	assert.Contains(t, out, "config.yaml:")
}

func TestListenWithoutBindings(t *testing.T) {
	_, err := execute(t, platformtest.New(), "listen")
	require.ErrorIs(t, err, hotkeys.ErrNoBindings)
}
