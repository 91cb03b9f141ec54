// Package notification delivers booking confirmation email.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"musebot/models"
)

// Mailer sends the booking confirmation for a completed payment.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, rec *models.PendingPayment, paymentID string) error
}

// SMTPMailer implements Mailer over authenticated SMTP with STARTTLS.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func NewSMTPMailer(host string, port int, username, password string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
		logger: logger,
	}
}

func (m *SMTPMailer) SendBookingConfirmation(_ context.Context, rec *models.PendingPayment, paymentID string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", rec.Email)
	msg.SetHeader("Subject", "Museum Ticket Booking Confirmation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n"+
			"Thank you for your payment! Your booking is confirmed for %d tickets on %s.\n"+
			"Total Amount: ₹%d\n"+
			"Payment ID: %s\n"+
			"Please bring this email or the payment ID on the day of your visit.\n"+
			"Regards,\n"+
			"Museum Team\n",
		rec.Name, rec.Tickets, rec.Date, rec.AmountINR, paymentID,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	m.logger.Info("confirmation email sent", zap.String("to", rec.Email))
	return nil
}
