package daily

import (
	"errors"
	"fmt"
)

// Section groups tasks by the part of the day they belong to.
type Section string

const (
	Morning Section = "morning"
	Day     Section = "day"
	Evening Section = "evening"
)

// Sections lists the fixed sections in display order.
var Sections = []Section{Morning, Day, Evening}

var sectionTitles = map[Section]string{
	Morning: "Morning Routine",
	Day:     "Day Tasks",
	Evening: "Evening Wind-down",
}

func (s Section) Title() string { return sectionTitles[s] }

// ParseSection maps a section name to a Section.
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

type Task struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Completed bool   `json:"completed"`
}

// Board holds the tasks of all three sections.
type Board struct {
	Morning []Task `json:"morning"`
	Day     []Task `json:"day"`
	Evening []Task `json:"evening"`
}

// Tasks returns the tasks of one section. Unknown sections yield nil.
func (b Board) Tasks(s Section) []Task {
	switch s {
	case Morning:
		return b.Morning
	case Day:
		return b.Day
	case Evening:
		return b.Evening
	}
	return nil
}

// All returns every task in section order.
func (b Board) All() []Task {
	all := make([]Task, 0, len(b.Morning)+len(b.Day)+len(b.Evening))
	all = append(all, b.Morning...)
	all = append(all, b.Day...)
	return append(all, b.Evening...)
}

func (b Board) clone() Board {
	return Board{
		Morning: cloneTasks(b.Morning),
		Day:     cloneTasks(b.Day),
		Evening: cloneTasks(b.Evening),
	}
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// ScratchItem is one brain-dump note.
type ScratchItem struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// Reflection is the live, not yet committed reflection for the active day.
type Reflection struct {
	Mood   int    `json:"mood"`
	Energy int    `json:"energy"`
	Focus  int    `json:"focus"`
	Notes  string `json:"notes"`
}

// Field names an editable reflection field.
type Field string

const (
	FieldMood   Field = "mood"
	FieldEnergy Field = "energy"
	FieldFocus  Field = "focus"
	FieldNotes  Field = "notes"
)

// ScoreFields lists the numeric reflection fields in display order.
var ScoreFields = []Field{FieldMood, FieldEnergy, FieldFocus}

// Score returns the value of a numeric field, or 0 for notes/unknown fields.
func (r Reflection) Score(f Field) int {
	switch f {
	case FieldMood:
		return r.Mood
	case FieldEnergy:
		return r.Energy
	case FieldFocus:
		return r.Focus
	}
	return 0
}

// HistoryEntry is the committed snapshot of one day.
type HistoryEntry struct {
	Date                 string `json:"date"`
	Mood                 int    `json:"mood"`
	Energy               int    `json:"energy"`
	Focus                int    `json:"focus"`
	Notes                string `json:"notes"`
	CompletionPercentage int    `json:"completionPercentage"`
}

// Snapshot is a detached copy of the store state for presentation.
type Snapshot struct {
	Date       string
	Board      Board
	Scratch    []ScratchItem
	Reflection Reflection
	History    []HistoryEntry
	Completion int
}

// Stage returns the garden stage for the snapshot's completion percentage.
func (s Snapshot) Stage() Stage { return GardenStage(s.Completion) }

func (s Snapshot) Insight() string { return Insight(s.History) }

// CompletedCount returns how many tasks are checked off.
func (s Snapshot) CompletedCount() (done, total int) {
	for _, t := range s.Board.All() {
		total++
		if t.Completed {
			done++
		}
	}
	return done, total
}

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownTask    = errors.New("unknown task")
	ErrUnknownField   = errors.New("unknown reflection field")
	ErrInvalidValue   = errors.New("invalid reflection value")
	ErrBoardMismatch  = errors.New("board does not match the task set")
)
