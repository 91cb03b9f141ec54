package booking

import (
	"context"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// LinkParams describes one payment link to create.
type LinkParams struct {
	AmountPaise int
	Currency    string
	Description string
	Name        string
	Email       string
	Contact     string
	CallbackURL string
}

// Link is the provider-hosted checkout page for one booking.
type Link struct {
	ID       string
	ShortURL string
}

// PaymentLinker creates provider payment links.
type PaymentLinker interface {
	Create(ctx context.Context, p LinkParams) (*Link, error)
}

const paymentLinkTimeout = 10 * time.Second

// RazorpayLinker implements PaymentLinker on the Razorpay payment-link API.
type RazorpayLinker struct {
	client *razorpay.Client
	logger *zap.Logger
}

func NewRazorpayLinker(keyID, secret string, logger *zap.Logger) *RazorpayLinker {
	return &RazorpayLinker{
		client: razorpay.NewClient(keyID, secret),
		logger: logger,
	}
}

// Create issues a payment link. The SDK call does not take a context, so it
// runs in a goroutine bounded by the caller's deadline.
func (l *RazorpayLinker) Create(ctx context.Context, p LinkParams) (*Link, error) {
	data := map[string]interface{}{
		"amount":         p.AmountPaise,
		"currency":       p.Currency,
		"accept_partial": false,
		"description":    p.Description,
		"customer": map[string]interface{}{
			"name":    p.Name,
			"email":   p.Email,
			"contact": p.Contact,
		},
		"notify":          map[string]interface{}{"sms": true, "email": true},
		"reminder_enable": true,
		"callback_url":    p.CallbackURL,
		"callback_method": "get",
	}

	ctx, cancel := context.WithTimeout(ctx, paymentLinkTimeout)
	defer cancel()

	type result struct {
		body map[string]interface{}
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		body, err := l.client.PaymentLink.Create(data, nil)
		ch <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("payment link creation timed out: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("payment link creation failed: %w", r.err)
		}
		id, _ := r.body["id"].(string)
		shortURL, _ := r.body["short_url"].(string)
		if id == "" || shortURL == "" {
			return nil, fmt.Errorf("payment link response missing id or short_url")
		}
		return &Link{ID: id, ShortURL: shortURL}, nil
	}
}
