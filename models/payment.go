package models

import "time"

// PaymentStatus is the lifecycle state of a pending payment record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// PendingPayment is created when a payment link is issued and keyed by the
// link id. Status moves pending -> completed at most once.
type PendingPayment struct {
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	Tickets     int           `json:"tickets"`
	Date        string        `json:"date"`
	AmountINR   int           `json:"amountInr"`
	AmountPaise int           `json:"amountPaise"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}
