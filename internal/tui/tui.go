// Package tui is the interactive terminal action picker behind `wmgr pick`.
package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/tiling"
)

// ErrCancelled is returned when the picker is closed without a choice.
var ErrCancelled = errors.New("pick cancelled")

// Pick shows the action list and returns the chosen action. table drives
// the layout previews.
func Pick(table tiling.Table) (action.Action, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0, fmt.Errorf("pick requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	final, err := tea.NewProgram(newModel(table), tea.WithAltScreen()).Run()
	if err != nil {
		return 0, fmt.Errorf("picker failed: %w", err)
	}
	m, ok := final.(model)
	if !ok || !m.chosen {
		return 0, ErrCancelled
	}
	return m.choice, nil
}
