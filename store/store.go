// Package store provides the keyed state shared by the chat dialogue and the
// payment callback: booking dialogue sessions and pending payment records.
// All mutation of a single key is serialized, so a chat turn racing another
// turn for the same caller, or a payment callback racing its duplicate, never
// interleaves reads and writes of the same entry.
package store

import (
	"context"
	"errors"
	"sync"

	"musebot/models"
)

// ErrAborted can be returned by mutate callbacks to cancel a mutation; the
// stored record is left untouched and the error propagates to the caller.
var ErrAborted = errors.New("store: mutation aborted")

// SessionStore holds the per-caller booking dialogue sessions.
type SessionStore interface {
	Get(ctx context.Context, key string) (*models.ChatSession, bool, error)
	Put(ctx context.Context, key string, sess *models.ChatSession) error
	Delete(ctx context.Context, key string) error
}

// PendingPaymentStore holds payment-link records keyed by link id.
// Mutate runs fn with a working copy of the record under the key's lock; fn
// may modify the record in place. A non-nil error from fn discards the
// modification, leaves the stored record untouched, and propagates to the
// caller. The bool result reports whether the key existed.
type PendingPaymentStore interface {
	Get(ctx context.Context, id string) (*models.PendingPayment, bool, error)
	Put(ctx context.Context, id string, rec *models.PendingPayment) error
	Mutate(ctx context.Context, id string, fn func(*models.PendingPayment) error) (bool, error)
}

// KeyMutex hands out one mutex per key. Locks are never evicted; the key
// space here (session tokens, payment link ids) is small and process-scoped.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
