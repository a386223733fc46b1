package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/garden/internal/daily"
)

// statsMetric selects which history series the chart shows.
type statsMetric int

const (
	metricMood statsMetric = iota
	metricEnergy
	metricFocus
	metricCompletion
)

var metricNames = []string{"Mood", "Energy", "Focus", "Growth %"}

var metricColors = []lipgloss.Color{colorMood, colorEnergy, colorFocus, colorPrimary}

func (m statsMetric) value(e daily.HistoryEntry) float64 {
	switch m {
	case metricMood:
		return float64(e.Mood)
	case metricEnergy:
		return float64(e.Energy)
	case metricFocus:
		return float64(e.Focus)
	}
	return float64(e.CompletionPercentage)
}

type statsModel struct {
	width  int
	height int

	days    int
	metric  statsMetric
	trend   []daily.HistoryEntry
	insight string

	chart barchart.Model
}

func newStatsModel(days int) statsModel {
	if days <= 0 {
		days = 7
	}
	return statsModel{
		days:  days,
		chart: barchart.New(60, 12),
	}
}

func (r *statsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r *statsModel) setSnapshot(s daily.Snapshot) {
	r.trend = daily.Trend(s.History, r.days)
	r.insight = s.Insight()
	r.buildChart()
}

func (r statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Left):
		r.metric = (r.metric + statsMetric(len(metricNames)) - 1) % statsMetric(len(metricNames))
		r.buildChart()
	case key.Matches(keyMsg, keys.Right):
		r.metric = (r.metric + 1) % statsMetric(len(metricNames))
		r.buildChart()
	}
	return r, nil
}

// shortDate trims a history key like "Fri Oct 16 2026" to "Fri 16".
func shortDate(date string) string {
	parts := strings.Fields(date)
	if len(parts) >= 3 {
		return parts[0] + " " + parts[2]
	}
	return date
}

func (r *statsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	style := lipgloss.NewStyle().Foreground(metricColors[r.metric])
	var bars []barchart.BarData
	for _, e := range r.trend {
		bars = append(bars, barchart.BarData{
			Label: shortDate(e.Date),
			Values: []barchart.BarValue{{
				Name:  metricNames[r.metric],
				Value: r.metric.value(e),
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r statsModel) view() string {
	w := r.width - 4

	var tabs []string
	for i, name := range metricNames {
		if statsMetric(i) == r.metric {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.NewStyle().Bold(true).Foreground(colorStats).Render("Analysis"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	sub := mutedStyle.Render(fmt.Sprintf("Trends (last %d days)", r.days))

	var chartView string
	if len(r.trend) == 0 {
		chartView = mutedStyle.Render("  No reflections saved yet. Save a day from the Reflect tab.")
	} else {
		chartView = r.chart.View()
	}

	insight := activePanelStyle.Width(max(20, w-6)).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("💡 Insight"),
			r.insight,
		),
	)

	nav := mutedStyle.Render("  ←/→: switch metric")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, sub, "", chartView, "", r.renderTable(), "", insight, "", nav,
		),
	)
}

func (r statsModel) renderTable() string {
	if len(r.trend) == 0 {
		return ""
	}
	rows := []string{mutedStyle.Render(fmt.Sprintf("  %-16s %5s %7s %6s %7s", "Date", "Mood", "Energy", "Focus", "Growth"))}
	for _, e := range r.trend {
		rows = append(rows, fmt.Sprintf("  %-16s %5d %7d %6d %6d%%",
			e.Date, e.Mood, e.Energy, e.Focus, e.CompletionPercentage))
	}
	return strings.Join(rows, "\n")
}
