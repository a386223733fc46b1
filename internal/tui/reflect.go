package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/garden/internal/daily"
)

type scoreMeta struct {
	label    string
	low, top string
}

var scoreLabels = map[daily.Field]scoreMeta{
	daily.FieldMood:   {"Mood", "😞", "🤩"},
	daily.FieldEnergy: {"Energy", "🔋", "⚡"},
	daily.FieldFocus:  {"Focus", "☁️", "🎯"},
}

type reflectModel struct {
	store  *daily.Store
	width  int
	height int

	draft  daily.Reflection
	cursor int

	formActive bool
	form       *huh.Form

	// Form value as pointer (survives value copies)
	notes *string
}

func newReflectModel(s *daily.Store) reflectModel {
	notes := ""
	return reflectModel{store: s, notes: &notes}
}

func (m *reflectModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *reflectModel) setSnapshot(s daily.Snapshot) { m.draft = s.Reflection }

func (m reflectModel) update(msg tea.Msg) (reflectModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
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
		if m.cursor < len(daily.ScoreFields)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Left):
		return m.adjust(-1)
	case key.Matches(keyMsg, keys.Right):
		return m.adjust(+1)
	case key.Matches(keyMsg, keys.Edit):
		return m.showNotesForm()
	case key.Matches(keyMsg, keys.Save):
		return m, m.save()
	}
	return m, nil
}

func (m reflectModel) adjust(delta int) (reflectModel, tea.Cmd) {
	field := daily.ScoreFields[m.cursor]
	v := clamp(m.draft.Score(field)+delta, 1, 10)
	if err := m.store.UpdateReflectionField(field, strconv.Itoa(v)); err != nil {
		return m, tea.Batch(errorCmd(err), refreshCmd(m.store))
	}
	return m, refreshCmd(m.store)
}

func (m reflectModel) save() tea.Cmd {
	return func() tea.Msg {
		e, err := m.store.CommitReflection()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save failed: %v", err), isError: true}
		}
		return savedMsg{entry: e}
	}
}

func (m reflectModel) showNotesForm() (reflectModel, tea.Cmd) {
	*m.notes = m.draft.Notes

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Notes / Thoughts").
				Placeholder("How was the wicket today? Any spin balls?").
				CharLimit(2000).
				Value(m.notes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m reflectModel) updateForm(msg tea.Msg) (reflectModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		if err := m.store.UpdateReflectionField(daily.FieldNotes, *m.notes); err != nil {
			return m, tea.Batch(errorCmd(err), refreshCmd(m.store))
		}
		return m, refreshCmd(m.store)
	}

	return m, cmd
}

func (m reflectModel) view() string {
	w := m.width - 4
	title := lipgloss.NewStyle().Bold(true).Foreground(colorEvening).Render("🌙 Evening Reflection")

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	rows := []string{title, ""}
	for i, f := range daily.ScoreFields {
		meta := scoreLabels[f]
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		bar := lipgloss.NewStyle().Foreground(scoreColors[string(f)]).Render(scoreBar(m.draft.Score(f)))
		rows = append(rows, fmt.Sprintf("%s%s %s %s %s  %s",
			cursor,
			style.Width(8).Render(meta.label),
			meta.low, bar, meta.top,
			fmt.Sprintf("%d/10", m.draft.Score(f)),
		))
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Notes"))
	if strings.TrimSpace(m.draft.Notes) == "" {
		rows = append(rows, mutedStyle.Render("  (none yet, press e to write)"))
	} else {
		for _, line := range strings.Split(m.draft.Notes, "\n") {
			rows = append(rows, "  "+line)
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: adjust  ↑/↓: move  e: notes  s: save day"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
