package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/cbuclub/internal/client/storage"
	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
)

var (
	// ErrPersist wraps durable-storage failures. The in-memory state has
	// already been updated when it is returned.
	ErrPersist = errors.New("session not persisted")

	// ErrStudentNumberLocked is returned by SetUser when an established
	// session would change its student number.
	ErrStudentNumberLocked = errors.New("student number is fixed until the session is cleared")
)

// Store owns the process-wide Session.
type Store struct {
	mu     sync.Mutex
	state  Session
	st     storage.Storage
	linked []string
	log    logging.Logger
}

type Option func(*Store)

// WithLinkedKeys names extra storage keys that Clear removes together with
// the session record.
func WithLinkedKeys(keys ...string) Option {
	return func(s *Store) { s.linked = append(s.linked, keys...) }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns an empty store. A nil st keeps the session in memory only.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{state: Empty(), st: st, log: logging.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory state with the persisted identity, if any.
func (s *Store) Load(ctx context.Context) error {
	if s.st == nil {
		return nil
	}
	b, err := s.st.GetItem(ctx, common.SessionStorageKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if b == nil {
		return nil
	}
	restored, err := decode(b)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = restored
	s.mu.Unlock()

	s.log.Debug(ctx, "session restored", "logged_in", restored.LoggedIn())
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetUser merges p over the current identity and recomputes IsAdmin.
func (s *Store) SetUser(ctx context.Context, p Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.StudentNumber != nil && s.state.StudentNumber != 0 && *p.StudentNumber != s.state.StudentNumber {
		return fmt.Errorf("set user %d: %w", *p.StudentNumber, ErrStudentNumberLocked)
	}
	s.state.apply(p)
	return s.persistLocked(ctx)
}

// Replace starts a new identity from Empty and persists it. Linked keys are
// left alone; the caller owns them.
func (s *Store) Replace(ctx context.Context, p Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Empty()
	s.state.apply(p)
	return s.persistLocked(ctx)
}

// SetAuthStatus overwrites both security flags. They are not persisted.
func (s *Store) SetAuthStatus(st AuthStatus) {
	s.mu.Lock()
	s.state.IsDefaultPassword = st.IsDefaultPassword
	s.state.IsEmailNull = st.IsEmailNull
	s.mu.Unlock()
}

// UpdateEmail records a verified email registration.
func (s *Store) UpdateEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.apply(Patch{Email: &email})
	s.state.IsEmailNull = false
	s.state.EmailUpdated = true
	return s.persistLocked(ctx)
}

// Clear resets the store to Empty and removes the persisted record along
// with any linked keys in one storage operation.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Empty()
	if s.st == nil {
		return nil
	}
	keys := append([]string{common.SessionStorageKey}, s.linked...)
	if err := s.st.RemoveItems(ctx, keys...); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.st == nil {
		return nil
	}
	b, err := encode(s.state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.st.SetItem(ctx, common.SessionStorageKey, b); err != nil {
		s.log.Warn(ctx, "session persist failed", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
