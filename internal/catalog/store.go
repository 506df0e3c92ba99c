package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/HendryAvila/wardrobe/internal/slot"
	"go.uber.org/zap"
)

// ErrCorruptState means the stored document could not be parsed. There is
// no recovery path; the caller decides how to fail.
var ErrCorruptState = errors.New("catalog: corrupt persisted state")

// Store keeps the Catalog in memory and mirrors every mutation to a slot.
//
// Each mutating call persists before returning. When persistence fails the
// in-memory change is kept and the error is returned, so memory and storage
// may diverge until the next successful save.
type Store struct {
	mu    sync.Mutex
	slot  slot.Slot
	data  Catalog
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates a Store over sl. Call Load before use.
func New(sl slot.Slot, opts ...Option) *Store {
	s := &Store{
		slot:  sl,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ─── Persistence ─────────────────────────────────────────────────────────────

// Load reads the whole Catalog from the slot. On first run the slot is
// absent: the Catalog starts empty and is persisted right away. A payload
// that does not parse yields an error wrapping ErrCorruptState.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.slot.Read()
	if errors.Is(err, slot.ErrAbsent) {
		s.log.Info("no stored catalog, starting empty", zap.String("slot", s.slot.Name()))
		s.data = Catalog{Items: []Item{}, Combinations: []Combination{}}
		return s.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("catalog: reading slot %q: %w", s.slot.Name(), err)
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	s.data = c

	s.log.Debug("catalog loaded",
		zap.String("slot", s.slot.Name()),
		zap.Int("items", len(c.Items)),
		zap.Int("combinations", len(c.Combinations)),
	)
	return nil
}

// Save serializes the whole Catalog and overwrites the slot.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("catalog: marshaling: %w", err)
	}
	if err := s.slot.Write(data); err != nil {
		s.log.Error("persisting catalog failed",
			zap.String("slot", s.slot.Name()),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return fmt.Errorf("catalog: saving: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the whole Catalog for read-only queries.
func (s *Store) Snapshot() Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// ─── Items ───────────────────────────────────────────────────────────────────

// AddItem stores a new item built from data. Any ID or CreatedAt on data is
// replaced with a fresh id and the current time. The stored item is
// returned even when persisting fails.
func (s *Store) AddItem(data Item) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := cloneItem(data)
	item.ID = s.newID()
	item.CreatedAt = FormatTime(s.now())
	s.data.Items = append(s.data.Items, item)

	s.log.Debug("item added", zap.String("id", item.ID), zap.String("category", item.Category))
	return cloneItem(item), s.saveLocked()
}

// Items returns a copy of the item collection, in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.data.Items)
}

// ItemByID returns the first item with the given id.
func (s *Store) ItemByID(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.itemIndex(id); i >= 0 {
		return cloneItem(s.data.Items[i]), true
	}
	return Item{}, false
}

// UpdateItem shallow-merges patch over the item with the given id and
// persists. It returns false, and changes nothing, for an unknown id.
func (s *Store) UpdateItem(id string, patch ItemPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.itemIndex(id)
	if i < 0 {
		return false, nil
	}
	patch.apply(&s.data.Items[i])

	s.log.Debug("item updated", zap.String("id", id))
	return true, s.saveLocked()
}

// DeleteItem removes the first item with the given id and persists.
// Combinations referencing it are left as they are.
func (s *Store) DeleteItem(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.itemIndex(id)
	if i < 0 {
		return false, nil
	}
	s.data.Items = slices.Delete(s.data.Items, i, i+1)

	s.log.Debug("item deleted", zap.String("id", id))
	return true, s.saveLocked()
}

func (s *Store) itemIndex(id string) int {
	return slices.IndexFunc(s.data.Items, func(it Item) bool { return it.ID == id })
}

// ─── Combinations ────────────────────────────────────────────────────────────

// AddCombination stores a new combination built from data, with a fresh id
// and timestamp. Tags are trimmed and empty ones dropped; the name is kept
// as given and item ids are not checked against the item collection.
func (s *Store) AddCombination(data Combination) (Combination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	combo := Combination{
		ID:        s.newID(),
		Name:      data.Name,
		Tags:      NormalizeTags(data.Tags),
		Items:     append([]string{}, data.Items...),
		CreatedAt: FormatTime(s.now()),
	}
	s.data.Combinations = append(s.data.Combinations, combo)

	s.log.Debug("combination added", zap.String("id", combo.ID), zap.Int("items", len(combo.Items)))
	return cloneCombination(combo), s.saveLocked()
}

// Combinations returns a copy of the combination collection.
func (s *Store) Combinations() []Combination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCombinations(s.data.Combinations)
}

// CombinationByID returns the first combination with the given id.
func (s *Store) CombinationByID(id string) (Combination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.combinationIndex(id); i >= 0 {
		return cloneCombination(s.data.Combinations[i]), true
	}
	return Combination{}, false
}

// DeleteCombination removes the first combination with the given id.
func (s *Store) DeleteCombination(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.combinationIndex(id)
	if i < 0 {
		return false, nil
	}
	s.data.Combinations = slices.Delete(s.data.Combinations, i, i+1)

	s.log.Debug("combination deleted", zap.String("id", id))
	return true, s.saveLocked()
}

func (s *Store) combinationIndex(id string) int {
	return slices.IndexFunc(s.data.Combinations, func(c Combination) bool { return c.ID == id })
}
