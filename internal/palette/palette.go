// Package palette shows the action list in an external launcher (rofi,
// fuzzel, wofi or dmenu) and returns the user's choice.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the launcher without choosing.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row of the palette.
type Item struct {
	Label    string // visible text
	Value    string // returned on selection
	Icon     string // icon name, rofi/wofi/fuzzel only
	Meta     string // hidden search keywords, rofi only
	IsHeader bool   // section title; not selectable where the launcher allows
	IsActive bool   // highlighted and preselected
}

// Backend shows a list and returns the chosen item.
type Backend interface {
	Show(prompt string, items []Item) (Item, error)
	Name() string
}

// launchers in detection order.
var launchers = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// DetectBackend returns the first launcher found in PATH.
func DetectBackend() (string, error) {
	for _, name := range launchers {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(launchers, ", "))
}

// NewBackend creates a backend by name: auto, rofi, fuzzel, wofi or dmenu.
// fuzzy enables fuzzy matching where the launcher supports it.
func NewBackend(name string, fuzzy bool) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	var l *launcher
	switch name {
	case "rofi":
		l = newRofi()
	case "fuzzel":
		l = newFuzzel()
	case "wofi":
		l = newWofi()
	case "dmenu":
		l = newDmenu()
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(launchers, ", "))
	}
	if _, err := exec.LookPath(l.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", l.command)
	}
	l.fuzzy = fuzzy
	return l, nil
}
