package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLocationExtraction(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"im near", "i'm near central park", "central park"},
		{"no apostrophe", "im near central park", "central park"},
		{"i am near", "i am near the beach", "the beach"},
		{"coming from", "coming from brooklyn", "brooklyn"},
		{"embedded phrase", "hello, i'm near central park today", "central park today"},
		{"question mark truncates", "i'm near central park? how long", "central park"},
		{"period truncates", "coming from brooklyn. also hi", "brooklyn"},
		{"question mark before period", "i'm near mg road? ok.", "mg road"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := Classify(tt.question, false)
			assert.Equal(t, IntentLocation, route.Intent)
			assert.Equal(t, tt.want, route.Location)
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		hasSession bool
		want       Intent
	}{
		{"distance keyword without place", "how far is the museum", false, IntentDistanceHelp},
		{"near keyword alone", "is it near the station", false, IntentDistanceHelp},
		{"trigger with empty remainder", "i'm near ?", false, IntentDistanceHelp},
		{"location beats booking", "i'm near central park, book ticket", false, IntentLocation},
		{"book ticket", "i want to book ticket", false, IntentBookingStart},
		{"book ticket beats session", "book ticket", true, IntentBookingStart},
		{"session continuation", "asha, asha@example.com, +919876543210, 3, 2025-04-10", true, IntentBookingContinue},
		{"general question", "when was the museum founded", false, IntentGeneral},
		{"general question with session falls to continuation", "yes", true, IntentBookingContinue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := Classify(tt.question, tt.hasSession)
			assert.Equal(t, tt.want, route.Intent)
		})
	}
}
