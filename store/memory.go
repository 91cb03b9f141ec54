package store

import (
	"context"
	"sync"

	"musebot/models"
)

// MemorySessionStore is the default single-process session store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.ChatSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.ChatSession)}
}

func (s *MemorySessionStore) Get(_ context.Context, key string) (*models.ChatSession, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[key]
	if !ok {
		return nil, false, nil
	}
	cp := sess
	return &cp, true, nil
}

func (s *MemorySessionStore) Put(_ context.Context, key string, sess *models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = *sess
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// MemoryPendingPaymentStore keeps payment-link records in process memory with
// per-id mutual exclusion for mutations.
type MemoryPendingPaymentStore struct {
	mu    sync.RWMutex
	recs  map[string]*models.PendingPayment
	locks *KeyMutex
}

func NewMemoryPendingPaymentStore() *MemoryPendingPaymentStore {
	return &MemoryPendingPaymentStore{
		recs:  make(map[string]*models.PendingPayment),
		locks: NewKeyMutex(),
	}
}

func (s *MemoryPendingPaymentStore) Get(_ context.Context, id string) (*models.PendingPayment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, false, nil
	}
	cp := *rec
	return &cp, true, nil
}

func (s *MemoryPendingPaymentStore) Put(_ context.Context, id string, rec *models.PendingPayment) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	cp := *rec
	s.mu.Lock()
	s.recs[id] = &cp
	s.mu.Unlock()
	return nil
}

// Mutate applies fn to a working copy of the record under the id's lock and
// commits it only when fn returns nil. Side effects performed inside fn are
// therefore serialized with the status flip, which is what guarantees
// at-most-once payment completion.
func (s *MemoryPendingPaymentStore) Mutate(_ context.Context, id string, fn func(*models.PendingPayment) error) (bool, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	s.mu.RLock()
	rec, ok := s.recs[id]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	working := *rec
	if err := fn(&working); err != nil {
		return true, err
	}

	s.mu.Lock()
	s.recs[id] = &working
	s.mu.Unlock()
	return true, nil
}
