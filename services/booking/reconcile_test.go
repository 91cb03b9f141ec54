package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"musebot/models"
	"musebot/store"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	inserted []models.Booking
	err      error
}

func (f *fakeBookingRepo) Insert(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, *b)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent int
	err  error
}

func (f *fakeMailer) SendBookingConfirmation(_ context.Context, rec *models.PendingPayment, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
	if f.err != nil {
		return f.err
	}
	return nil
}

func newTestReconciler() (*Reconciler, *store.MemoryPendingPaymentStore, *fakeBookingRepo, *fakeMailer) {
	pending := store.NewMemoryPendingPaymentStore()
	repo := &fakeBookingRepo{}
	mailer := &fakeMailer{}
	rec := &Reconciler{
		Pending:  pending,
		Bookings: repo,
		Mailer:   mailer,
		Logger:   zap.NewNop(),
	}
	return rec, pending, repo, mailer
}

func seedPending(t *testing.T, pending *store.MemoryPendingPaymentStore, id string) {
	t.Helper()
	err := pending.Put(context.Background(), id, &models.PendingPayment{
		Name:        "asha",
		Email:       "asha@example.com",
		PhoneNumber: "+919876543210",
		Tickets:     3,
		Date:        "2025-04-10",
		AmountINR:   150,
		AmountPaise: 15000,
		Status:      models.PaymentStatusPending,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
}

func TestCompleteUnknownIDIsNoOp(t *testing.T) {
	rec, _, repo, mailer := newTestReconciler()

	ok := rec.Complete(context.Background(), "plink_missing", "paid")
	assert.False(t, ok)
	assert.Empty(t, repo.inserted)
	assert.Zero(t, mailer.sent)
}

func TestCompleteNonPaidStatusIsNoOp(t *testing.T) {
	rec, pending, repo, mailer := newTestReconciler()
	seedPending(t, pending, "plink_1")

	for _, status := range []string{"", "created", "cancelled", "expired"} {
		ok := rec.Complete(context.Background(), "plink_1", status)
		assert.False(t, ok, "status=%q", status)
	}
	assert.Empty(t, repo.inserted)
	assert.Zero(t, mailer.sent)

	p, ok, err := pending.Get(context.Background(), "plink_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
}

func TestCompletePaidPersistsBookingAndSendsEmail(t *testing.T) {
	rec, pending, repo, mailer := newTestReconciler()
	seedPending(t, pending, "plink_1")

	ok := rec.Complete(context.Background(), "plink_1", "paid")
	assert.True(t, ok)

	require.Len(t, repo.inserted, 1)
	b := repo.inserted[0]
	assert.Equal(t, "plink_1", b.PaymentID)
	assert.Equal(t, "asha", b.Name)
	assert.Equal(t, 3, b.Tickets)
	assert.Equal(t, 150, b.Amount)
	assert.Equal(t, "completed", b.Status)
	assert.Equal(t, 1, mailer.sent)

	p, found, err := pending.Get(context.Background(), "plink_1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
}

// A duplicate callback must not produce a second booking record or email.
func TestCompleteTwiceRunsSideEffectsOnce(t *testing.T) {
	rec, pending, repo, mailer := newTestReconciler()
	seedPending(t, pending, "plink_1")

	assert.True(t, rec.Complete(context.Background(), "plink_1", "paid"))
	assert.False(t, rec.Complete(context.Background(), "plink_1", "paid"))

	assert.Len(t, repo.inserted, 1)
	assert.Equal(t, 1, mailer.sent)
}

func TestCompleteConcurrentDuplicatesRunSideEffectsOnce(t *testing.T) {
	rec, pending, repo, mailer := newTestReconciler()
	seedPending(t, pending, "plink_1")

	const callers = 16
	var wg sync.WaitGroup
	completions := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			completions <- rec.Complete(context.Background(), "plink_1", "paid")
		}()
	}
	wg.Wait()
	close(completions)

	wins := 0
	for ok := range completions {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Len(t, repo.inserted, 1)
	assert.Equal(t, 1, mailer.sent)
}

func TestCompleteInsertFailureLeavesRecordPending(t *testing.T) {
	rec, pending, repo, mailer := newTestReconciler()
	seedPending(t, pending, "plink_1")
	repo.err = errors.New("mongo down")

	ok := rec.Complete(context.Background(), "plink_1", "paid")
	assert.False(t, ok)
	assert.Zero(t, mailer.sent)

	// Record stays pending so a later callback can still complete it.
	p, found, err := pending.Get(context.Background(), "plink_1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.PaymentStatusPending, p.Status)

	repo.err = nil
	assert.True(t, rec.Complete(context.Background(), "plink_1", "paid"))
	assert.Len(t, repo.inserted, 1)
}

func TestCompleteEmailFailureStillCompletes(t *testing.T) {
	rec, pending, repo, mailer := newTestReconciler()
	seedPending(t, pending, "plink_1")
	mailer.err = errors.New("smtp down")

	ok := rec.Complete(context.Background(), "plink_1", "paid")
	assert.True(t, ok)
	assert.Len(t, repo.inserted, 1)

	p, _, _ := pending.Get(context.Background(), "plink_1")
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	assert.Equal(t, 1, mailer.sent)
}
