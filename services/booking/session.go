// Package booking drives the multi-step ticket purchase dialogue and the
// payment-callback reconciliation that completes it.
package booking

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"musebot/models"
	"musebot/monitoring"
	"musebot/store"
)

const (
	detailsPrompt = "Provide Name, Email, Phone Number, Tickets, and Date (YYYY-MM-DD), " +
		"separated by commas (e.g., Sanjay, sanjay@example.com, +919876543210, 4, 2025-03-01). " +
		"Ticket price is ₹%d per ticket."
	invalidFormatReply = "Invalid format. Provide: Name, Email, Phone Number, Tickets, Date (YYYY-MM-DD)."
	invalidPhoneReply  = "Invalid phone number format. Please provide a valid phone number starting with +91 " +
		"followed by 10 digits (e.g., +919876543210)."
	invalidEmailReply   = "Invalid email format. Please provide a valid email address."
	invalidTicketsReply = "Invalid number of tickets. Please provide a positive integer."
	invalidDateReply    = "Invalid date format. Please provide the date in YYYY-MM-DD format (e.g., 2025-03-01)."
	confirmPrompt       = "Confirm %d tickets on %s for %s (%s, %s)? Total amount: ₹%d. Type 'yes' to proceed."
	confirmReprompt     = "Please type 'yes' to confirm your booking, or 'book ticket' to start over."
	paymentLinkReply    = "Please complete your payment of ₹%d by clicking <a href='%s' target='_blank'>here</a>. " +
		"You will receive a confirmation email once payment is successful."
	paymentRetryReply = "Sorry, we couldn't create your payment link right now. Please type 'yes' to try again later."
)

var (
	phonePattern   = regexp.MustCompile(`^\+91\d{10}$`)
	ticketsPattern = regexp.MustCompile(`^\d+$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Config carries the booking constants.
type Config struct {
	TicketPriceINR int
	Currency       string
	CallbackURL    string
	// ConfirmReprompt: when true, non-"yes" input at the confirm step gets a
	// corrective reprompt instead of falling through to general Q&A.
	ConfirmReprompt bool
}

// Service is the per-caller booking session machine.
type Service struct {
	Cfg      Config
	Sessions store.SessionStore
	Pending  store.PendingPaymentStore
	Payments PaymentLinker
	Logger   *zap.Logger
}

// Begin creates (or overwrites) the caller's session at the detail-collection
// step and returns the field prompt.
func (s *Service) Begin(ctx context.Context, key string) (string, error) {
	sess := &models.ChatSession{
		Step:      models.StepCollectDetails,
		CreatedAt: time.Now(),
	}
	if err := s.Sessions.Put(ctx, key, sess); err != nil {
		return "", fmt.Errorf("failed to open booking session: %w", err)
	}
	return fmt.Sprintf(detailsPrompt, s.Cfg.TicketPriceINR), nil
}

// Advance feeds one normalized turn to the caller's session. The bool result
// reports whether the turn was consumed; false means the turn should fall
// through to the general Q&A responder.
func (s *Service) Advance(ctx context.Context, key string, sess *models.ChatSession, input string) (string, bool) {
	switch sess.Step {
	case models.StepCollectDetails:
		return s.collectDetails(ctx, key, sess, input), true
	case models.StepConfirm:
		return s.confirm(ctx, key, sess, input)
	default:
		// Unmodeled step: drop the broken session rather than trap the caller.
		s.Logger.Warn("dropping session in unknown step", zap.String("step", string(sess.Step)))
		if err := s.Sessions.Delete(ctx, key); err != nil {
			s.Logger.Error("failed to delete session", zap.Error(err))
		}
		return "", false
	}
}

func (s *Service) collectDetails(ctx context.Context, key string, sess *models.ChatSession, input string) string {
	details := strings.Split(input, ",")
	if len(details) != 5 {
		return invalidFormatReply
	}
	for i := range details {
		details[i] = strings.TrimSpace(details[i])
	}
	name, email, phone, ticketsRaw, date := details[0], details[1], details[2], details[3], details[4]

	if !phonePattern.MatchString(phone) {
		return invalidPhoneReply
	}
	if !emailPattern.MatchString(email) {
		return invalidEmailReply
	}
	if !ticketsPattern.MatchString(ticketsRaw) {
		return invalidTicketsReply
	}
	tickets, err := strconv.Atoi(ticketsRaw)
	if err != nil || tickets <= 0 {
		return invalidTicketsReply
	}
	if !datePattern.MatchString(date) {
		return invalidDateReply
	}

	amountINR := tickets * s.Cfg.TicketPriceINR
	sess.Name = name
	sess.Email = email
	sess.PhoneNumber = phone
	sess.Tickets = tickets
	sess.Date = date
	sess.AmountINR = amountINR
	sess.AmountPaise = amountINR * 100
	sess.Step = models.StepConfirm

	if err := s.Sessions.Put(ctx, key, sess); err != nil {
		s.Logger.Error("failed to save booking session", zap.Error(err))
		return paymentRetryReply
	}
	return fmt.Sprintf(confirmPrompt, tickets, date, name, email, phone, amountINR)
}

func (s *Service) confirm(ctx context.Context, key string, sess *models.ChatSession, input string) (string, bool) {
	if input != "yes" {
		if s.Cfg.ConfirmReprompt {
			return confirmReprompt, true
		}
		return "", false
	}

	link, err := s.Payments.Create(ctx, LinkParams{
		AmountPaise: sess.AmountPaise,
		Currency:    s.Cfg.Currency,
		Description: "Museum Ticket Booking",
		Name:        sess.Name,
		Email:       sess.Email,
		Contact:     sess.PhoneNumber,
		CallbackURL: s.Cfg.CallbackURL,
	})
	if err != nil {
		// Session stays at confirm; the caller resends "yes" to retry.
		s.Logger.Error("payment link creation failed", zap.Error(err))
		return paymentRetryReply, true
	}

	rec := &models.PendingPayment{
		Name:        sess.Name,
		Email:       sess.Email,
		PhoneNumber: sess.PhoneNumber,
		Tickets:     sess.Tickets,
		Date:        sess.Date,
		AmountINR:   sess.AmountINR,
		AmountPaise: sess.AmountPaise,
		Status:      models.PaymentStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.Pending.Put(ctx, link.ID, rec); err != nil {
		s.Logger.Error("failed to record pending payment", zap.String("paymentId", link.ID), zap.Error(err))
		return paymentRetryReply, true
	}
	if err := s.Sessions.Delete(ctx, key); err != nil {
		s.Logger.Error("failed to delete booking session", zap.Error(err))
	}

	monitoring.PaymentLinksCreated.Inc()
	s.Logger.Info("payment link issued",
		zap.String("paymentId", link.ID),
		zap.Int("amountInr", sess.AmountINR),
	)
	return fmt.Sprintf(paymentLinkReply, sess.AmountINR, link.ShortURL), true
}
