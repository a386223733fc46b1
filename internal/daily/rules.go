package daily

import (
	"fmt"
	"math"
	"time"
)

const (
	markerLayout  = "2006-01-02"
	historyLayout = "Mon Jan 2 2006"

	minScore = 1
	maxScore = 10
)

// DefaultBoard returns the fixed task set every day starts with.
func DefaultBoard() Board {
	return Board{
		Morning: []Task{
			{ID: "m1", Label: "Morning Meds", Icon: "💊"},
			{ID: "m2", Label: "Morning Self Care", Icon: "🪥"},
			{ID: "m3", Label: "Drink Water (Glass 1)", Icon: "💧"},
		},
		Day: []Task{
			{ID: "d1", Label: "Walk the Dogs", Icon: "🐕"},
			{ID: "d2", Label: "Exercise / Movement", Icon: "💪"},
			{ID: "d3", Label: "Drink Water (Glass 2)", Icon: "💧"},
			{ID: "d4", Label: "Drink Water (Glass 3)", Icon: "💧"},
		},
		Evening: []Task{
			{ID: "e1", Label: "Evening Meds", Icon: "💊"},
			{ID: "e2", Label: "Prepare for Tomorrow", Icon: "🎒"},
		},
	}
}

func DefaultReflection() Reflection {
	return Reflection{Mood: 5, Energy: 5, Focus: 5}
}

// DateKey is the calendar-day marker used for rollover.
func DateKey(t time.Time) string { return t.Format(markerLayout) }

// DisplayDate is the key history entries are stored under.
func DisplayDate(t time.Time) string { return t.Format(historyLayout) }

// checkBoard reports whether b holds exactly the default sections and task IDs,
// in order. Labels, icons and completion flags are not compared.
func checkBoard(b Board) error {
	def := DefaultBoard()
	for _, sec := range Sections {
		want, got := def.Tasks(sec), b.Tasks(sec)
		if len(got) != len(want) {
			return fmt.Errorf("%w: %s has %d tasks, want %d", ErrBoardMismatch, sec, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID {
				return fmt.Errorf("%w: %s task %d is %q, want %q", ErrBoardMismatch, sec, i, got[i].ID, want[i].ID)
			}
		}
	}
	return nil
}

// Rollover decides whether the board has to be reset. It returns the board to
// keep, the marker to store and whether a reset happened.
func Rollover(board Board, marker, today string) (Board, string, bool) {
	if marker == today {
		return board, marker, false
	}
	return DefaultBoard(), today, true
}

// Completion is round(100 * completed / total) over all sections, 0 for an
// empty board.
func Completion(b Board) int {
	var done, total int
	for _, t := range b.All() {
		total++
		if t.Completed {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func clampScore(v int) int {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

// upsertHistory drops any entry sharing e.Date and appends e.
func upsertHistory(history []HistoryEntry, e HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(history)+1)
	for _, h := range history {
		if h.Date != e.Date {
			out = append(out, h)
		}
	}
	return append(out, e)
}

// Stage is the plant shown for a completion percentage.
type Stage struct {
	Glyph   string
	Message string
}

func GardenStage(pct int) Stage {
	switch {
	case pct >= 100:
		return Stage{"🌺", "Perfect harmony!"}
	case pct > 80:
		return Stage{"🌳", "Full bloom!"}
	case pct > 50:
		return Stage{"🪴", "Looking vibrant!"}
	case pct > 20:
		return Stage{"🌿", "Growing nicely!"}
	}
	return Stage{"🌱", "Let's get started!"}
}

const (
	insightTooEarly = "Keep tracking for a few days to see insights!"
	insightCanned   = "Your mood seems to track closely with your energy levels. Prioritize sleep to keep the scoreboard ticking over."
)

// Insight is a canned message; it only looks at how much history exists.
func Insight(history []HistoryEntry) string {
	if len(history) < 3 {
		return insightTooEarly
	}
	return insightCanned
}

// Trend returns the last n history entries, oldest first.
func Trend(history []HistoryEntry, n int) []HistoryEntry {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
