package models

import "time"

// Booking is the persisted record of a completed ticket purchase.
// Write-once: never updated after insertion.
type Booking struct {
	PaymentID   string    `bson:"payment_id" json:"paymentId"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phone_number" json:"phoneNumber"`
	Tickets     int       `bson:"tickets" json:"tickets"`
	Date        string    `bson:"date" json:"date"`
	Amount      int       `bson:"amount" json:"amount"`
	Status      string    `bson:"status" json:"status"`
	PaymentDate time.Time `bson:"payment_date" json:"paymentDate"`
}

// GeoPoint is a longitude/latitude pair.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}
