package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.Color("#10B981") // emerald
	colorMorning = lipgloss.Color("#F97316")
	colorDay     = lipgloss.Color("#3B82F6")
	colorEvening = lipgloss.Color("#6366F1")
	colorDump    = lipgloss.Color("#EC4899")
	colorMood    = lipgloss.Color("#EC4899")
	colorEnergy  = lipgloss.Color("#EAB308")
	colorFocus   = lipgloss.Color("#3B82F6")
	colorStats   = lipgloss.Color("#9333EA")
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorError   = lipgloss.Color("#E74C3C")
	colorFg      = lipgloss.Color("#C0CAF5")
	colorSubtle  = lipgloss.Color("#414868")
)

var sectionColors = map[string]lipgloss.Color{
	"morning": colorMorning,
	"day":     colorDay,
	"evening": colorEvening,
}

var scoreColors = map[string]lipgloss.Color{
	"mood":   colorMood,
	"energy": colorEnergy,
	"focus":  colorFocus,
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	plantStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Strikethrough(true)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
