package models

import "time"

// Step identifies the current stage of a booking dialogue.
type Step string

const (
	StepCollectDetails Step = "collect_details"
	StepConfirm        Step = "confirm"
)

// ChatSession holds the state of one caller's booking dialogue. Sessions are
// ephemeral: they exist only between the "book ticket" trigger and either the
// payment link being issued or the process restarting.
type ChatSession struct {
	Step        Step      `json:"step"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Tickets     int       `json:"tickets,omitempty"`
	Date        string    `json:"date,omitempty"`
	AmountINR   int       `json:"amountInr,omitempty"`
	AmountPaise int       `json:"amountPaise,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
