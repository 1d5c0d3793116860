package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/tiling"
)

// actionItem is a list row for one action.
type actionItem struct {
	action action.Action
}

func (i actionItem) Title() string { return i.action.Title() }

func (i actionItem) Description() string {
	return string(i.action.Family()) + " · " + i.action.String()
}

func (i actionItem) FilterValue() string { return i.action.String() + " " + i.action.Title() }

// model is the root bubbletea model of the picker.
type model struct {
	list   list.Model
	table  tiling.Table
	choice action.Action
	chosen bool

	width  int
	height int
}

func newModel(table tiling.Table) model {
	all := action.All()
	items := make([]list.Item, len(all))
	for i, a := range all {
		items[i] = actionItem{action: a}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(items, delegate, 0, 0)
	l.Title = "wmgr"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)

	return model{list: l, table: table}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listWidth(), m.height)
		return m, nil

	case tea.KeyMsg:
		// Keys go to the filter input while the user is typing.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(actionItem); ok {
				m.choice = item.action
				m.chosen = true
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) listWidth() int {
	return max(m.width*2/5, 24)
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	left := lipgloss.NewStyle().
		Width(m.listWidth()).
		Render(m.list.View())

	previewWidth := max(m.width-m.listWidth()-4, 10)
	previewHeight := max(m.height/2, 5)

	var right string
	if item, ok := m.list.SelectedItem().(actionItem); ok {
		lines := renderPreview(m.table, item.action, previewWidth, previewHeight)
		right = lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(lipgloss.Color("250")).
			Render(strings.Join(lines, "\n") + "\n\n" + describe(m.table, item.action))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
