package sequencemock

import (
	"context"
	"sync"

	domain "creditline-backend/internal/domain/sequence"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is an in-memory counter that satisfies sequence.Repository.
// Set NextFn to override; otherwise each scope counts up from 1.
type Repo struct {
	NextFn func(ctx context.Context, scope string) (int, error)

	mu       sync.Mutex
	counters map[string]int
}

func (m *Repo) Next(ctx context.Context, scope string) (int, error) {
	if m.NextFn != nil {
		return m.NextFn(ctx, scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int)
	}
	m.counters[scope]++
	return m.counters[scope], nil
}
