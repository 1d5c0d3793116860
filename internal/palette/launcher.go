package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

// launcher drives any dmenu-compatible program: items on stdin, the choice
// on stdout.
type launcher struct {
	command string
	kind    launcherKind
	fuzzy   bool

	// byIndex launchers print the chosen row number instead of its text.
	byIndex bool
	markup  bool
	icons   bool

	// run is swapped in tests.
	run func(command string, args []string, stdin string) (string, error)
}

func newRofi() *launcher {
	return &launcher{command: "rofi", kind: kindRofi, byIndex: true, markup: true, icons: true, run: runCommand}
}

func newFuzzel() *launcher {
	return &launcher{command: "fuzzel", kind: kindFuzzel, byIndex: true, icons: true, run: runCommand}
}

func newWofi() *launcher {
	return &launcher{command: "wofi", kind: kindWofi, markup: true, run: runCommand}
}

func newDmenu() *launcher {
	return &launcher{command: "dmenu", kind: kindDmenu, run: runCommand}
}

func (l *launcher) Name() string { return l.command }

func (l *launcher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	rows := make([]Item, len(items))
	copy(rows, items)
	if !l.byIndex {
		disambiguate(rows)
	}

	lines := make([]string, len(rows))
	for i, item := range rows {
		lines[i] = l.formatRow(item)
	}

	out, err := l.run(l.command, l.args(prompt, rows), strings.Join(lines, "\n"))
	selection := strings.TrimSpace(out)
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		return Item{}, err
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parseSelection(selection, rows)
}

func (l *launcher) args(prompt string, rows []Item) []string {
	var args []string
	switch l.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		if l.fuzzy {
			args = append(args, "-matching", "fuzzy")
		}
		if row := preselect(rows); row >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(row), "-a", strconv.Itoa(row))
		}
	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	case kindWofi:
		args = []string{"--dmenu", "--allow-markup"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	case kindDmenu:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}
	return args
}

// preselect returns the first active selectable row, else the first
// selectable row, else -1.
func preselect(rows []Item) int {
	first := -1
	for i, item := range rows {
		if item.IsHeader {
			continue
		}
		if item.IsActive {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

func (l *launcher) formatRow(item Item) string {
	text := sanitizeLabel(item.Label)
	if l.markup {
		text = html.EscapeString(text)
		if item.IsHeader {
			text = "<b>" + text + "</b>"
		}
	}
	if l.kind != kindRofi {
		return text
	}

	// Rofi row properties: one NUL, then key/value pairs split by \x1f.
	var attrs []string
	if item.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeField(item.Icon))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeField(item.Meta))
	}
	if len(attrs) == 0 {
		return text
	}
	return text + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parseSelection(selection string, rows []Item) (Item, error) {
	if l.byIndex {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(rows) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return rows[idx], nil
		}
	}
	for _, item := range rows {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

// disambiguate suffixes repeated labels so text-matching launchers can tell
// them apart.
func disambiguate(rows []Item) {
	seen := make(map[string]int)
	for i := range rows {
		if rows[i].IsHeader {
			continue
		}
		key := sanitizeLabel(rows[i].Label)
		if n := seen[key]; n > 0 {
			rows[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
		}
		seen[key]++
	}
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func runCommand(command string, args []string, stdin string) (string, error) {
	cmd := exec.Command(command, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" && !isCancelExit(err) {
			return string(out), fmt.Errorf("%s failed: %s: %w", command, msg, err)
		}
		return string(out), err
	}
	return string(out), nil
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// 1 is "no selection", 130 is Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	}
	return false
}
