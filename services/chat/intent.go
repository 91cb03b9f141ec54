package chat

import "strings"

// Intent is the single route chosen for one chat turn.
type Intent int

const (
	// IntentGeneral delegates the question to the RAG responder.
	IntentGeneral Intent = iota
	// IntentLocation computes driving distance from a stated place.
	IntentLocation
	// IntentDistanceHelp answers a distance-ish question that named no place.
	IntentDistanceHelp
	// IntentBookingStart opens a fresh booking dialogue.
	IntentBookingStart
	// IntentBookingContinue feeds the turn to an in-flight booking dialogue.
	IntentBookingContinue
)

// Route is the classification result for one normalized turn.
type Route struct {
	Intent   Intent
	Location string // set only for IntentLocation
}

// Trigger phrases checked in order; the first match wins and the substring
// after it (cut at the first "?" or ".") is the place phrase.
var locationTriggers = []string{"i'm near ", "im near ", "i am near ", "coming from "}

var distanceKeywords = []string{"distance", "how far", "far is", "near", "close", "nearby"}

// Classify routes a normalized (trimmed, lower-cased) turn. Precedence:
// location statement, distance keyword, "book ticket", existing session,
// general Q&A.
func Classify(question string, hasSession bool) Route {
	if loc := extractLocation(question); loc != "" {
		return Route{Intent: IntentLocation, Location: loc}
	}
	for _, kw := range distanceKeywords {
		if strings.Contains(question, kw) {
			return Route{Intent: IntentDistanceHelp}
		}
	}
	if strings.Contains(question, "book ticket") {
		return Route{Intent: IntentBookingStart}
	}
	if hasSession {
		return Route{Intent: IntentBookingContinue}
	}
	return Route{Intent: IntentGeneral}
}

func extractLocation(question string) string {
	for _, trigger := range locationTriggers {
		idx := strings.Index(question, trigger)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(question[idx+len(trigger):])
		if cut := strings.IndexAny(rest, "?."); cut >= 0 {
			rest = rest[:cut]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}
