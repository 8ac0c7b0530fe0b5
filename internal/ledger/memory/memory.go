package memory

import (
	"context"
	"sync"

	"bahtbot/internal/core"
	"bahtbot/internal/ledger"
)

// Store is an in-memory ledger used by tests and the default dev backend.
type Store struct {
	mu   sync.Mutex
	rows []core.Transaction

	// FailNext makes the next mutating or reading call fail with
	// ledger.ErrUnavailable, for exercising persistence-failure paths.
	FailNext bool
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Seed replaces the row set, bypassing validation. Test helper.
func (s *Store) Seed(rows []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append([]core.Transaction(nil), rows...)
}

func (s *Store) ReadAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNow() {
		return nil, ledger.ErrUnavailable
	}
	out := make([]core.Transaction, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *Store) Append(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNow() {
		return ledger.ErrUnavailable
	}
	t.Category = t.CategoryOrDefault()
	s.rows = append(s.rows, t)
	return nil
}

func (s *Store) LastBalance(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNow() {
		return 0, ledger.ErrUnavailable
	}
	if len(s.rows) == 0 {
		return 0, nil
	}
	return s.rows[len(s.rows)-1].Balance, nil
}

func (s *Store) failNow() bool {
	if s.FailNext {
		s.FailNext = false
		return true
	}
	return false
}
