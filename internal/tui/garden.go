package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/garden/internal/daily"
)

type gardenModel struct {
	width  int
	height int

	snap daily.Snapshot
	bar  progress.Model
}

func newGardenModel() gardenModel {
	return gardenModel{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (g *gardenModel) setSize(w, h int) {
	g.width = w
	g.height = h
	g.bar.Width = max(10, w-16)
}

func (g *gardenModel) setSnapshot(s daily.Snapshot) { g.snap = s }

func (g gardenModel) update(msg tea.Msg) (gardenModel, tea.Cmd) {
	return g, nil
}

func (g gardenModel) view() string {
	if g.width < 20 {
		return "Terminal too small"
	}

	w := g.width - 4
	stage := g.snap.Stage()
	done, total := g.snap.CompletedCount()

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("My Wellbeing Garden")
	growth := successStyle.Render(fmt.Sprintf("Daily Growth: %d%%", g.snap.Completion))

	plant := activePanelStyle.Width(w - 6).Render(plantStyle.Width(w - 12).Render(stage.Glyph))
	message := mutedStyle.Italic(true).Render(fmt.Sprintf("%q", stage.Message))

	counts := mutedStyle.Render(fmt.Sprintf("%d/%d tasks done  ·  %d thoughts dumped  ·  %d days reflected",
		done, total, len(g.snap.Scratch), len(g.snap.History)))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		growth,
		"",
		plant,
		message,
		"",
		g.bar.ViewAs(float64(g.snap.Completion)/100),
		"",
		counts,
	)
	return panelStyle.Width(w).Align(lipgloss.Center).Render(content)
}
