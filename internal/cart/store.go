package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
)

// Store is the single source of truth for one cart's contents. Every
// mutation persists synchronously before returning; a failed write is logged
// and the in-memory cart stays authoritative for the session.
type Store struct {
	repo       Repository
	logg       *logger.Logger
	storageKey string

	mu    sync.Mutex
	lines []Line
}

// NewStore builds a cart store bound to one storage key.
func NewStore(repo Repository, logg *logger.Logger, storageKey string) (*Store, error) {
	if repo == nil {
		return nil, errors.New("cart repository required")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, errors.New("cart storage key required")
	}
	return &Store{
		repo:       repo,
		logg:       logg,
		storageKey: storageKey,
	}, nil
}

// Load installs the persisted cart. Missing or corrupt data resets to an
// empty cart; nothing here is a fault for the caller.
func (s *Store) Load(ctx context.Context) {
	lines, err := s.repo.Load(ctx, s.storageKey)
	if err != nil {
		if errors.Is(err, ErrCorruptPayload) {
			s.warn(ctx, "stored cart payload corrupt, resetting to empty", err)
		} else {
			s.warn(ctx, "cart load failed, starting empty", err)
		}
		lines = nil
	}

	for i := range lines {
		if lines[i].Quantity < 1 {
			lines[i].Quantity = 1
		}
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}

// Add appends a new line with quantity 1, or increments the existing line
// for the same id without touching its snapshot name/price. Invalid input is
// a logged no-op.
func (s *Store) Add(ctx context.Context, id int, name string, price int) (Line, bool) {
	if id <= 0 || strings.TrimSpace(name) == "" || price <= 0 {
		s.warn(ctx, "ignoring add with invalid line input", nil)
		return Line{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var affected Line
	found := false
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity++
			affected = s.lines[i]
			found = true
			break
		}
	}
	if !found {
		affected = Line{ID: id, Name: name, Price: price, Quantity: 1}
		s.lines = append(s.lines, affected)
	}

	s.persistLocked(ctx)
	return affected, true
}

// ApplyQuantityDelta adds delta to the quantity of the line at index. A
// resulting quantity of zero or less removes the line entirely. Out-of-range
// indices are logged no-ops.
func (s *Store) ApplyQuantityDelta(ctx context.Context, index, delta int) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		s.warn(ctx, "ignoring quantity change for unknown cart index", nil)
		return Line{}, false
	}

	line := s.lines[index]
	if line.Quantity+delta <= 0 {
		s.lines = append(s.lines[:index], s.lines[index+1:]...)
		line.Quantity = 0
	} else {
		s.lines[index].Quantity += delta
		line = s.lines[index]
	}

	s.persistLocked(ctx)
	return line, true
}

// Remove deletes the line at index, shifting later indices down by one.
// Returns the removed line so callers can name it in a notification.
func (s *Store) Remove(ctx context.Context, index int) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		s.warn(ctx, "ignoring removal of unknown cart index", nil)
		return Line{}, false
	}
	removed := s.lines[index]
	s.lines = append(s.lines[:index], s.lines[index+1:]...)

	s.persistLocked(ctx)
	return removed, true
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked(ctx)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItemCount sums all line quantities, for the badge display.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// TotalAmount sums price*quantity across all lines.
func (s *Store) TotalAmount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}

// persistLocked writes the current lines while the store mutex is held, so
// saves for the same storage key commit in mutation order. Two overlapping
// mutations would otherwise race their repo writes and could leave the
// durable record holding the older payload.
func (s *Store) persistLocked(ctx context.Context) {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	if err := s.repo.Save(ctx, s.storageKey, lines); err != nil {
		s.warn(ctx, "cart persistence failed, keeping in-memory state", err)
	}
}

func (s *Store) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithCartKey(ctx, s.storageKey)
	if err != nil {
		ctx = s.logg.WithField(ctx, "error", err.Error())
	}
	s.logg.Warn(ctx, msg)
}
