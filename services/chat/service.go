// Package chat routes each inbound message to exactly one handler: distance
// lookup, the booking dialogue, or the RAG responder.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"musebot/monitoring"
	"musebot/services/booking"
	"musebot/services/distance"
	"musebot/services/rag"
	"musebot/store"
)

const (
	distanceHelpReply = "To calculate the distance to the museum, please provide your location like this: " +
		"'I'm near Central Park' or 'I'm coming from Brooklyn'."
	answerUnavailableReply = "Sorry, I'm having trouble answering right now. Please try again later."
)

// Service handles one chat turn end to end.
type Service struct {
	Sessions  store.SessionStore
	Booking   *booking.Service
	Distance  distance.Resolver
	Responder rag.Responder
	Logger    *zap.Logger

	// turns serializes handling per caller so two concurrent turns from the
	// same session token cannot interleave session reads and writes.
	turns *store.KeyMutex
}

func NewService(
	sessions store.SessionStore,
	bookingSvc *booking.Service,
	distanceSvc distance.Resolver,
	responder rag.Responder,
	logger *zap.Logger,
) *Service {
	return &Service{
		Sessions:  sessions,
		Booking:   bookingSvc,
		Distance:  distanceSvc,
		Responder: responder,
		Logger:    logger,
		turns:     store.NewKeyMutex(),
	}
}

// HandleTurn normalizes the message, classifies it, and dispatches to exactly
// one handler. The returned string is always a user-facing answer; an error
// means the turn could not be processed at all.
func (s *Service) HandleTurn(ctx context.Context, sessionKey, message string) (string, error) {
	unlock := s.turns.Lock(sessionKey)
	defer unlock()

	question := strings.ToLower(strings.TrimSpace(message))

	sess, hasSession, err := s.Sessions.Get(ctx, sessionKey)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	route := Classify(question, hasSession)
	monitoring.ChatTurns.WithLabelValues(intentLabel(route.Intent)).Inc()

	switch route.Intent {
	case IntentLocation:
		return s.Distance.Reply(ctx, route.Location), nil
	case IntentDistanceHelp:
		return distanceHelpReply, nil
	case IntentBookingStart:
		return s.Booking.Begin(ctx, sessionKey)
	case IntentBookingContinue:
		reply, handled := s.Booking.Advance(ctx, sessionKey, sess, question)
		if handled {
			return reply, nil
		}
		// Not consumed by the dialogue: delegate to general Q&A.
	}

	answer, err := s.Responder.Answer(ctx, question)
	if err != nil {
		s.Logger.Error("responder failed", zap.Error(err))
		return answerUnavailableReply, nil
	}
	return answer, nil
}

func intentLabel(i Intent) string {
	switch i {
	case IntentLocation:
		return "location"
	case IntentDistanceHelp:
		return "distance_help"
	case IntentBookingStart:
		return "booking_start"
	case IntentBookingContinue:
		return "booking_continue"
	default:
		return "general"
	}
}
