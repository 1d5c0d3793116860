package palette

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/1broseidon/wmgr/internal/action"
)

type recorded struct {
	command string
	args    []string
	stdin   string
}

func scripted(l *launcher, outputs ...string) (*launcher, *[]recorded) {
	var calls []recorded
	l.run = func(command string, args []string, stdin string) (string, error) {
		calls = append(calls, recorded{command: command, args: args, stdin: stdin})
		if len(outputs) == 0 {
			return "", nil
		}
		out := outputs[0]
		outputs = outputs[1:]
		return out, nil
	}
	return l, &calls
}

func TestRofiFormatRow_SingleNullSeparator(t *testing.T) {
	out := newRofi().formatRow(Item{Label: "Halves", IsHeader: true, Icon: "folder", Meta: "meta"})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.HasPrefix(out, "<b>Halves</b>\x00") {
		t.Fatalf("expected bold header, got %q", out)
	}
	if !strings.Contains(out, "nonselectable\x1ftrue\x1ficon\x1ffolder\x1fmeta\x1fmeta") {
		t.Fatalf("expected row properties, got %q", out)
	}
}

func TestRofiFormatRow_EscapesMarkup(t *testing.T) {
	out := newRofi().formatRow(Item{Label: "Two thirds & three fourths", IsHeader: true})
	if !strings.Contains(out, "Two thirds &amp; three fourths") {
		t.Fatalf("expected escaped label, got %q", out)
	}
}

func TestDmenuFormatRow_PlainText(t *testing.T) {
	out := newDmenu().formatRow(Item{Label: "Left half\n", Icon: "x", IsHeader: true})
	if out != "Left half" {
		t.Fatalf("expected plain label, got %q", out)
	}
}

func TestShow_RofiSelectsByIndex(t *testing.T) {
	l, calls := scripted(newRofi(), "2\n")
	items := []Item{
		{Label: "Halves", IsHeader: true},
		{Label: "Left half", Value: "left_half"},
		{Label: "Right half", Value: "right_half", IsActive: true},
	}

	got, err := l.Show("wmgr", items)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got.Value != "right_half" {
		t.Fatalf("expected right_half, got %+v", got)
	}

	args := strings.Join((*calls)[0].args, " ")
	for _, want := range []string{"-dmenu", "-format i", "-p wmgr", "-selected-row 2"} {
		if !strings.Contains(args, want) {
			t.Fatalf("expected %q in args %q", want, args)
		}
	}
	if strings.Contains(args, "-matching") {
		t.Fatalf("fuzzy matching should be off by default: %q", args)
	}
}

func TestShow_DmenuSelectsByLabel(t *testing.T) {
	l, calls := scripted(newDmenu(), "Same (2)\n")
	items := []Item{
		{Label: "Same", Value: "a"},
		{Label: "Same", Value: "b"},
	}

	got, err := l.Show("wmgr", items)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got.Value != "b" {
		t.Fatalf("expected the second duplicate, got %+v", got)
	}
	if stdin := (*calls)[0].stdin; stdin != "Same\nSame (2)" {
		t.Fatalf("unexpected stdin %q", stdin)
	}
	if items[1].Label != "Same" {
		t.Fatalf("caller items must not be modified")
	}
}

func TestShow_EmptySelectionCancels(t *testing.T) {
	l, _ := scripted(newFuzzel())
	_, err := l.Show("wmgr", []Item{{Label: "x"}})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestShow_IndexOutOfRange(t *testing.T) {
	l, _ := scripted(newFuzzel(), "9")
	if _, err := l.Show("wmgr", []Item{{Label: "x"}}); err == nil {
		t.Fatalf("expected out of range index to fail")
	}
}

func TestPickAction(t *testing.T) {
	items := ActionItems(action.LeftHalf)
	if !items[0].IsHeader || items[0].Label != string(action.FamilyHalves) {
		t.Fatalf("expected a leading family header, got %+v", items[0])
	}

	index := -1
	for i, item := range items {
		if item.Value == "top_left_quarter" {
			index = i
		}
	}
	if index < 0 {
		t.Fatalf("top_left_quarter missing from items")
	}

	// The first pick is a header; the launcher is shown again.
	l, calls := scripted(newFuzzel(), "0", strconv.Itoa(index))
	got, err := PickAction(l, action.LeftHalf)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got != action.TopLeftQuarter {
		t.Fatalf("expected top_left_quarter, got %s", got)
	}
	if len(*calls) != 2 {
		t.Fatalf("expected 2 launcher runs, got %d", len(*calls))
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	if _, err := NewBackend("zenity", false); err == nil {
		t.Fatalf("expected unknown backend to fail")
	}
}
