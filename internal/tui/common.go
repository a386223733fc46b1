package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/garden/internal/daily"
)

// viewState represents the currently active view.
type viewState int

const (
	viewGarden viewState = iota
	viewTasks
	viewDump
	viewReflect
	viewStats
)

var viewNames = []string{"Garden", "Tasks", "Dump", "Reflect", "Data"}

// --- Messages ---

type snapshotMsg struct {
	snap daily.Snapshot
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type savedMsg struct {
	entry daily.HistoryEntry
}

// --- Helpers ---

func refreshCmd(s *daily.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: s.Snapshot()}
	}
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

// scoreBar renders a 1..10 score as a fixed-width bar.
func scoreBar(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return strings.Repeat("█", v) + strings.Repeat("░", 10-v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
