package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/garden/internal/daily"
)

type dumpModel struct {
	store  *daily.Store
	width  int
	height int

	items  []daily.ScratchItem
	cursor int

	input  textinput.Model
	typing bool
}

func newDumpModel(s *daily.Store) dumpModel {
	ti := textinput.New()
	ti.Placeholder = "Get it out of your head..."
	ti.CharLimit = 280
	ti.Prompt = "+ "
	return dumpModel{store: s, input: ti}
}

func (m *dumpModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(10, w-12)
}

func (m *dumpModel) setSnapshot(s daily.Snapshot) {
	m.items = s.Scratch
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

func (m dumpModel) update(msg tea.Msg) (dumpModel, tea.Cmd) {
	if m.typing {
		return m.updateInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		m.typing = true
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(m.items) {
			if _, err := m.store.RemoveScratchItem(m.items[m.cursor].ID); err != nil {
				return m, tea.Batch(errorCmd(err), refreshCmd(m.store))
			}
			return m, refreshCmd(m.store)
		}
	}
	return m, nil
}

func (m dumpModel) updateInput(msg tea.Msg) (dumpModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Back):
			m.typing = false
			m.input.Blur()
			return m, nil
		case key.Matches(keyMsg, keys.Enter):
			text := m.input.Value()
			m.input.SetValue("")
			_, added, err := m.store.AddScratchItem(text)
			if err != nil {
				return m, tea.Batch(errorCmd(err), refreshCmd(m.store))
			}
			if added {
				m.cursor = len(m.items)
			}
			// Stay in input mode so several thoughts can be dumped in a row.
			return m, refreshCmd(m.store)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m dumpModel) view() string {
	w := m.width - 4
	title := lipgloss.NewStyle().Bold(true).Foreground(colorDump).Render("Brain Dump")

	rows := []string{title, ""}
	if m.typing {
		rows = append(rows, m.input.View())
	} else {
		rows = append(rows, mutedStyle.Render("Press n to add a thought"))
	}
	rows = append(rows, "")

	if len(m.items) == 0 {
		rows = append(rows, mutedStyle.Italic(true).Render("Empty head, happy life?"))
		rows = append(rows, mutedStyle.Italic(true).Render("Add items to clear the noise."))
	}
	for i, it := range m.items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor && !m.typing {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+"• "+it.Text))
	}

	rows = append(rows, "")
	if m.typing {
		rows = append(rows, mutedStyle.Render("  enter: add  esc: done"))
	} else {
		rows = append(rows, mutedStyle.Render("  n: new  d: delete  ↑/↓: move"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
