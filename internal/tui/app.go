package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/garden/internal/daily"
	"go.uber.org/zap"
)

// rolloverInterval is how often the app checks whether the calendar day changed.
const rolloverInterval = time.Minute

// App is the root Bubble Tea model.
type App struct {
	store  *daily.Store
	log    *zap.Logger
	width  int
	height int

	activeView viewState
	showHelp   bool

	garden  gardenModel
	tasks   tasksModel
	dump    dumpModel
	reflect reflectModel
	stats   statsModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(s *daily.Store, log *zap.Logger, trendDays int) App {
	if log == nil {
		log = zap.NewNop()
	}
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		log:        log,
		activeView: viewGarden,
		garden:     newGardenModel(),
		tasks:      newTasksModel(s),
		dump:       newDumpModel(s),
		reflect:    newReflectModel(s),
		stats:      newStatsModel(trendDays),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		refreshCmd(a.store),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.garden.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.dump.setSize(a.width, contentHeight)
		a.reflect.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewGarden)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewDump)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewReflect)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewStats)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		rolled, err := a.store.CheckRollover()
		if err != nil {
			a.log.Error("rollover while running", zap.Error(err))
			return a, tea.Batch(tickCmd(), errorCmd(err))
		}
		if rolled {
			return a, tea.Batch(tickCmd(), refreshCmd(a.store), func() tea.Msg {
				return statusMsg{text: "New day, fresh start 🌱"}
			})
		}
		return a, tickCmd()

	case snapshotMsg:
		a.garden.setSnapshot(msg.snap)
		a.tasks.setSnapshot(msg.snap)
		a.dump.setSnapshot(msg.snap)
		a.reflect.setSnapshot(msg.snap)
		a.stats.setSnapshot(msg.snap)
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		return a, nil

	case savedMsg:
		a.status = fmt.Sprintf("Reflection saved for %s (growth %d%%) 🌱", msg.entry.Date, msg.entry.CompletionPercentage)
		a.isErr = false
		return a, refreshCmd(a.store)
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, refreshCmd(a.store)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewGarden:
		a.garden, cmd = a.garden.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewDump:
		a.dump, cmd = a.dump.update(msg)
	case viewReflect:
		a.reflect, cmd = a.reflect.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDump:
		return a.dump.typing
	case viewReflect:
		return a.reflect.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewGarden:
		content = a.garden.view()
	case viewTasks:
		content = a.tasks.view()
	case viewDump:
		content = a.dump.view()
	case viewReflect:
		content = a.reflect.view()
	case viewStats:
		content = a.stats.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("garden")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := successStyle
		if a.isErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	growth := mutedStyle.Render(fmt.Sprintf(" %s %d%%", a.garden.snap.Stage().Glyph, a.garden.snap.Completion))

	left := footerStyle.Render(helpView)
	right := growth + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
