// Package daily holds the wellbeing tracker's state: the task board, the
// scratch list, the reflection draft and the history log. Every mutation is
// written through to a Persister before it returns.
package daily

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sadopc/garden/internal/store"
	"go.uber.org/zap"
)

// Slot keys.
const (
	SlotTasks      = "tasks"
	SlotScratch    = "scratch"
	SlotReflection = "reflection"
	SlotHistory    = "history"
	SlotLastDate   = "last_date"
)

// Persister stores opaque values under named slots. A slot that was never
// written must return an error wrapping store.ErrSlotNotFound.
type Persister interface {
	GetSlot(key string) ([]byte, error)
	PutSlot(key string, value []byte) error
}

type Store struct {
	mu  sync.Mutex
	db  Persister
	log *zap.Logger
	now func() time.Time

	date       string
	board      Board
	scratch    []ScratchItem
	lastID     int64
	reflection Reflection
	history    []HistoryEntry
}

// New returns a store backed by db. Call Initialize before use.
func New(db Persister, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		db:         db,
		log:        log,
		now:        time.Now,
		board:      DefaultBoard(),
		reflection: DefaultReflection(),
	}
}

// Initialize restores every slot and applies the daily rollover. Slots that
// are missing or fail to decode fall back to their defaults. The returned
// error only reports a failure to persist the rollover; the store is usable
// either way.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board = loadSlot(s, SlotTasks, Board{}, DefaultBoard())
	s.scratch = loadSlot(s, SlotScratch, nil, []ScratchItem(nil))
	s.reflection = loadSlot(s, SlotReflection, DefaultReflection(), DefaultReflection())
	s.reflection.Mood = clampScore(s.reflection.Mood)
	s.reflection.Energy = clampScore(s.reflection.Energy)
	s.reflection.Focus = clampScore(s.reflection.Focus)
	s.history = loadSlot(s, SlotHistory, nil, []HistoryEntry(nil))
	s.date = loadSlot(s, SlotLastDate, "", "")

	s.lastID = 0
	for _, it := range s.scratch {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}

	return s.rollover()
}

// CheckRollover applies the rollover rule against the current clock. It
// reports whether the board was reset.
func (s *Store) CheckRollover() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.date
	err := s.rollover()
	return s.date != before, err
}

func (s *Store) rollover() error {
	today := DateKey(s.now())
	board, marker, reset := Rollover(s.board, s.date, today)
	if !reset {
		return nil
	}
	s.log.Info("daily rollover", zap.String("from", s.date), zap.String("to", marker))
	s.board, s.date = board, marker
	return errors.Join(s.put(SlotTasks, s.board), s.put(SlotLastDate, s.date))
}

// ToggleTask flips the completed flag of one task on today's board. Unknown
// sections or IDs leave the board untouched and return an error.
func (s *Store) ToggleTask(section Section, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rollErr := s.rollover()

	var tasks []Task
	switch section {
	case Morning:
		tasks = s.board.Morning
	case Day:
		tasks = s.board.Day
	case Evening:
		tasks = s.board.Evening
	default:
		return errors.Join(rollErr, fmt.Errorf("%w: %q", ErrUnknownSection, section))
	}

	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			return errors.Join(rollErr, s.put(SlotTasks, s.board))
		}
	}
	return errors.Join(rollErr, fmt.Errorf("%w: %s/%s", ErrUnknownTask, section, id))
}

// AddScratchItem appends the trimmed text. Blank input is ignored and
// reported as ok=false.
func (s *Store) AddScratchItem(text string) (ScratchItem, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ScratchItem{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	item := ScratchItem{ID: id, Text: text}
	s.scratch = append(s.scratch, item)
	return item, true, s.put(SlotScratch, s.scratch)
}

// RemoveScratchItem deletes the item with the given id. Missing ids are a
// no-op and report false.
func (s *Store) RemoveScratchItem(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.scratch {
		if it.ID == id {
			s.scratch = append(s.scratch[:i:i], s.scratch[i+1:]...)
			return true, s.put(SlotScratch, s.scratch)
		}
	}
	return false, nil
}

// UpdateReflectionField replaces one field of the draft. Scores are parsed as
// integers and clamped to [1,10].
func (s *Store) UpdateReflectionField(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field == FieldNotes {
		s.reflection.Notes = value
		return s.put(SlotReflection, s.reflection)
	}

	var target *int
	switch field {
	case FieldMood:
		target = &s.reflection.Mood
	case FieldEnergy:
		target = &s.reflection.Energy
	case FieldFocus:
		target = &s.reflection.Focus
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, value)
	}
	*target = clampScore(n)
	return s.put(SlotReflection, s.reflection)
}

// CommitReflection writes today's history entry from the draft and the
// current completion percentage, replacing any entry already saved today.
// The draft is kept as is. A board left over from yesterday is reset first.
func (s *Store) CommitReflection() (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rollErr := s.rollover()

	e := HistoryEntry{
		Date:                 DisplayDate(s.now()),
		Mood:                 s.reflection.Mood,
		Energy:               s.reflection.Energy,
		Focus:                s.reflection.Focus,
		Notes:                s.reflection.Notes,
		CompletionPercentage: Completion(s.board),
	}
	s.history = upsertHistory(s.history, e)
	return e, errors.Join(rollErr, s.put(SlotHistory, s.history))
}

// Completion returns the current completion percentage.
func (s *Store) Completion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Completion(s.board)
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Date:       s.date,
		Board:      s.board.clone(),
		Reflection: s.reflection,
		Completion: Completion(s.board),
	}
	if s.scratch != nil {
		snap.Scratch = append([]ScratchItem(nil), s.scratch...)
	}
	if s.history != nil {
		snap.History = append([]HistoryEntry(nil), s.history...)
	}
	return snap
}

func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.db.PutSlot(key, data); err != nil {
		s.log.Error("persist slot failed", zap.String("slot", key), zap.Error(err))
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// loadSlot decodes a slot on top of base. Missing or unusable slots yield def.
func loadSlot[T any](s *Store, key string, base, def T) T {
	data, err := s.db.GetSlot(key)
	if errors.Is(err, store.ErrSlotNotFound) {
		return def
	}
	if err != nil {
		s.log.Warn("slot unreadable, using default", zap.String("slot", key), zap.Error(err))
		return def
	}
	v, err := DecodeSlot(key, data, base)
	if err != nil {
		s.log.Warn("slot corrupt, using default", zap.String("slot", key), zap.Error(err))
		return def
	}
	return v
}

// DecodeSlot decodes data on top of a copy of base, so fields absent from the
// JSON keep base's values. A tasks slot must also hold the full task set.
func DecodeSlot[T any](key string, data []byte, base T) (T, error) {
	v := base
	if err := json.Unmarshal(data, &v); err != nil {
		return base, err
	}
	if b, ok := any(v).(Board); ok && key == SlotTasks {
		if err := checkBoard(b); err != nil {
			return base, err
		}
	}
	return v, nil
}

// ValidateSlot reports whether data decodes as the value stored under key.
func ValidateSlot(key string, data []byte) error {
	var err error
	switch key {
	case SlotTasks:
		_, err = DecodeSlot(key, data, Board{})
	case SlotScratch:
		_, err = DecodeSlot[[]ScratchItem](key, data, nil)
	case SlotReflection:
		_, err = DecodeSlot(key, data, DefaultReflection())
	case SlotHistory:
		_, err = DecodeSlot[[]HistoryEntry](key, data, nil)
	case SlotLastDate:
		_, err = DecodeSlot(key, data, "")
	default:
		return fmt.Errorf("unknown slot %q", key)
	}
	return err
}
