package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"musebot/models"
	"musebot/services/booking"
	"musebot/store"
)

type recordingRepo struct {
	inserted []models.Booking
}

func (r *recordingRepo) Insert(_ context.Context, b *models.Booking) error {
	r.inserted = append(r.inserted, *b)
	return nil
}

type recordingMailer struct {
	sent int
}

func (m *recordingMailer) SendBookingConfirmation(context.Context, *models.PendingPayment, string) error {
	m.sent++
	return nil
}

func newPaymentFixture(t *testing.T) (*gin.Engine, *store.MemoryPendingPaymentStore, *recordingRepo, *recordingMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pending := store.NewMemoryPendingPaymentStore()
	repo := &recordingRepo{}
	mailer := &recordingMailer{}
	reconciler := &booking.Reconciler{
		Pending:  pending,
		Bookings: repo,
		Mailer:   mailer,
		Logger:   zap.NewNop(),
	}

	router := gin.New()
	handler := NewPaymentHandler(reconciler, zap.NewNop())
	router.GET("/payment-callback", handler.Callback)
	return router, pending, repo, mailer
}

func callback(router *gin.Engine, id, status string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet,
		"/payment-callback?razorpay_payment_link_id="+id+"&razorpay_payment_link_status="+status, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCallbackUnknownIDShowsFailurePage(t *testing.T) {
	router, _, repo, mailer := newPaymentFixture(t)

	w := callback(router, "plink_unknown", "paid")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payment Not Completed")
	assert.Empty(t, repo.inserted)
	assert.Zero(t, mailer.sent)
}

func TestCallbackPaidCompletesBooking(t *testing.T) {
	router, pending, repo, mailer := newPaymentFixture(t)
	require.NoError(t, pending.Put(context.Background(), "plink_1", &models.PendingPayment{
		Name: "asha", Email: "asha@example.com", Tickets: 3, Date: "2025-04-10",
		AmountINR: 150, AmountPaise: 15000,
		Status: models.PaymentStatusPending, CreatedAt: time.Now(),
	}))

	w := callback(router, "plink_1", "paid")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payment Successful!")
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, 1, mailer.sent)

	// The duplicate callback shows the neutral page and writes nothing.
	w = callback(router, "plink_1", "paid")
	assert.Contains(t, w.Body.String(), "Payment Not Completed")
	assert.Len(t, repo.inserted, 1)
	assert.Equal(t, 1, mailer.sent)
}

func TestCallbackNonPaidStatusShowsFailurePage(t *testing.T) {
	router, pending, repo, _ := newPaymentFixture(t)
	require.NoError(t, pending.Put(context.Background(), "plink_1", &models.PendingPayment{
		Status: models.PaymentStatusPending, CreatedAt: time.Now(),
	}))

	w := callback(router, "plink_1", "cancelled")
	assert.Contains(t, w.Body.String(), "Payment Not Completed")
	assert.Empty(t, repo.inserted)

	p, _, _ := pending.Get(context.Background(), "plink_1")
	assert.Equal(t, models.PaymentStatusPending, p.Status)
}
