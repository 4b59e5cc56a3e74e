package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/misterclayt0n/weekplan/internal/models"
	"github.com/misterclayt0n/weekplan/internal/planner"
)

// Store owns the state document. Every mutation is a read-modify-write of
// the whole document guarded by an optional expected revision.
type Store struct {
	mu      sync.Mutex
	backend Backend
	clock   planner.Clock
	loc     *time.Location
	log     *slog.Logger
	state   *models.State
}

type Option func(*Store)

func WithClock(c planner.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		clock:   planner.SystemClock{},
		loc:     time.Local,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load returns a copy of the current state, initializing and normalizing the
// document on first use.
func (s *Store) Load(ctx context.Context) (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.state.Clone(), nil
}

// Reload drops the cached document so the next call reads the backend again.
func (s *Store) Reload(ctx context.Context) (*models.State, error) {
	s.mu.Lock()
	s.state = nil
	s.mu.Unlock()
	return s.Load(ctx)
}

func (s *Store) today() time.Time {
	return planner.EffectiveToday(s.clock.Now(), s.loc)
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.state != nil {
		return nil
	}
	data, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}

	st := models.NewState()
	if len(data) > 0 {
		if err := json.Unmarshal(data, st); err != nil {
			return fmt.Errorf("Failed to decode state: %w", err)
		}
	}

	before, err := json.Marshal(st)
	if err != nil {
		return err
	}
	normalizeState(st, s.clock.Now(), s.today())
	after, err := json.Marshal(st)
	if err != nil {
		return err
	}

	if len(data) > 0 && bytes.Equal(before, after) {
		s.state = st
		return nil
	}
	if err := s.persist(ctx, st); err != nil {
		return err
	}
	s.state = st
	s.log.Info("state initialized", "rev", st.Rev, "people", len(st.People))
	return nil
}

// persist bumps the revision and writes st. st is only adopted by the caller
// once this succeeds.
func (s *Store) persist(ctx context.Context, st *models.State) error {
	st.Rev++
	st.UpdatedAt = s.clock.Now().UTC()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("Failed to encode state: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("Failed to save state: %w", err)
	}
	return nil
}

// mutation edits a working copy of the state and reports whether anything
// changed. Unchanged state is not saved and keeps its revision.
type mutation func(st *models.State) (bool, error)

func (s *Store) mutate(ctx context.Context, op string, expectedRev *int64, fn mutation) (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if expectedRev != nil && *expectedRev != s.state.Rev {
		s.log.Warn("revision conflict", "op", op, "expected", *expectedRev, "current", s.state.Rev)
		return nil, &ConflictError{Expected: *expectedRev, Current: s.state.Rev}
	}

	work := s.state.Clone()
	changed, err := fn(work)
	if err != nil {
		return nil, err
	}
	if !changed {
		s.log.Debug("no-op mutation", "op", op, "rev", s.state.Rev)
		return s.state.Clone(), nil
	}
	if err := s.persist(ctx, work); err != nil {
		return nil, err
	}
	s.state = work
	s.log.Debug("state saved", "op", op, "rev", work.Rev)
	return work.Clone(), nil
}
