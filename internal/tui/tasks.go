package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/garden/internal/daily"
)

// taskRef locates a task on the board by section and ID.
type taskRef struct {
	section daily.Section
	id      string
}

type tasksModel struct {
	store  *daily.Store
	width  int
	height int

	board  daily.Board
	cursor int
}

func newTasksModel(s *daily.Store) tasksModel {
	return tasksModel{store: s}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *tasksModel) setSnapshot(s daily.Snapshot) {
	m.board = s.Board
	if n := len(m.refs()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// refs flattens the board in display order.
func (m tasksModel) refs() []taskRef {
	var out []taskRef
	for _, sec := range daily.Sections {
		for _, t := range m.board.Tasks(sec) {
			out = append(out, taskRef{section: sec, id: t.ID})
		}
	}
	return out
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	refs := m.refs()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(refs)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle):
		if m.cursor < len(refs) {
			ref := refs[m.cursor]
			if err := m.store.ToggleTask(ref.section, ref.id); err != nil {
				return m, tea.Batch(errorCmd(err), refreshCmd(m.store))
			}
			return m, refreshCmd(m.store)
		}
	}
	return m, nil
}

func (m tasksModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Daily Plan")

	rows := []string{title}
	idx := 0
	for _, sec := range daily.Sections {
		rows = append(rows, "")
		color := sectionColors[string(sec)]
		rows = append(rows, lipgloss.NewStyle().Bold(true).Foreground(color).Render(sec.Title()))

		tasks := m.board.Tasks(sec)
		if len(tasks) == 0 {
			rows = append(rows, mutedStyle.Render("  nothing planned"))
		}
		for _, t := range tasks {
			cursor := "  "
			style := normalItemStyle
			if idx == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			box := "[ ]"
			label := fmt.Sprintf("%s %s", t.Icon, t.Label)
			if t.Completed {
				box = successStyle.Render("[✓]")
				label = doneStyle.Render(label)
			} else {
				label = style.Render(label)
			}
			rows = append(rows, style.Render(cursor)+box+" "+label)
			idx++
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
