package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"musebot/database/repository"
	"musebot/models"
	"musebot/monitoring"
	"musebot/services/notification"
	"musebot/store"
)

// Reconciler applies asynchronous payment-status notifications to pending
// payment records. Completion runs at most once per payment id: the status
// flip, the booking insert and the confirmation email all happen under the
// id's lock, and only while the record is still pending.
type Reconciler struct {
	Pending  store.PendingPaymentStore
	Bookings repository.BookingRepository
	Mailer   notification.Mailer
	Logger   *zap.Logger
}

// Complete processes one callback. It returns true only when this call is the
// one that completed the payment; unknown ids, non-"paid" statuses and
// already-completed records are quiet no-ops.
func (r *Reconciler) Complete(ctx context.Context, paymentID, status string) bool {
	if paymentID == "" || status != "paid" {
		monitoring.CallbacksIgnored.Inc()
		return false
	}

	completed := false
	found, err := r.Pending.Mutate(ctx, paymentID, func(rec *models.PendingPayment) error {
		if rec.Status != models.PaymentStatusPending {
			return store.ErrAborted
		}

		booking := &models.Booking{
			PaymentID:   paymentID,
			Name:        rec.Name,
			Email:       rec.Email,
			PhoneNumber: rec.PhoneNumber,
			Tickets:     rec.Tickets,
			Date:        rec.Date,
			Amount:      rec.AmountINR,
			Status:      "completed",
			PaymentDate: time.Now(),
		}
		// Persist first: if the insert fails the record stays pending and a
		// later callback can still complete the booking.
		if err := r.Bookings.Insert(ctx, booking); err != nil {
			return err
		}

		if err := r.Mailer.SendBookingConfirmation(ctx, rec, paymentID); err != nil {
			// Best-effort: the booking is already persisted.
			r.Logger.Error("failed to send confirmation email",
				zap.String("paymentId", paymentID), zap.Error(err))
		}

		rec.Status = models.PaymentStatusCompleted
		completed = true
		return nil
	})
	if err != nil && err != store.ErrAborted {
		r.Logger.Error("payment reconciliation failed",
			zap.String("paymentId", paymentID), zap.Error(err))
	}
	if !found {
		r.Logger.Warn("callback for unknown payment id", zap.String("paymentId", paymentID))
	}

	if completed {
		monitoring.PaymentsCompleted.Inc()
		r.Logger.Info("booking completed", zap.String("paymentId", paymentID))
	} else {
		monitoring.CallbacksIgnored.Inc()
	}
	return completed
}
