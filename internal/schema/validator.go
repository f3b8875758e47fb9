// Package schema checks outgoing events before they are published.
package schema

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/service/turn"
)

// ErrInvalidEvent is wrapped by every validation failure.
var ErrInvalidEvent = errors.New("invalid event")

// Validator checks TurnEvent and SentimentEvent payloads.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks required fields of a TurnEvent or SentimentEvent.
// Other event types are rejected.
func (v *Validator) Validate(event any) error {
	var err error
	switch e := event.(type) {
	case models.TurnEvent:
		err = validateTurn(e)
	case *models.TurnEvent:
		err = validateTurn(*e)
	case models.SentimentEvent:
		err = validateSentiment(e)
	case *models.SentimentEvent:
		err = validateSentiment(*e)
	default:
		err = fmt.Errorf("%w: unsupported type %T", ErrInvalidEvent, event)
	}
	if err != nil {
		return err
	}
	log.Debug().Type("event", event).Msg("Schema validated")
	return nil
}

func validateTurn(e models.TurnEvent) error {
	var missing []string
	if e.EventType != models.EventTurnInterviewer && e.EventType != models.EventTurnCandidate {
		missing = append(missing, "eventType")
	}
	if e.SessionID == "" {
		missing = append(missing, "sessionId")
	}
	if !validTurnID(e.SessionID, e.TurnID) {
		missing = append(missing, "turnId")
	}
	if e.Role != models.RoleInterviewer && e.Role != models.RoleCandidate {
		missing = append(missing, "role")
	}
	if e.Timestamp <= 0 {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: turn event: bad %s", ErrInvalidEvent, strings.Join(missing, ", "))
	}
	if models.EventForRole(e.Role) != e.EventType {
		return fmt.Errorf("%w: turn event: eventType %s does not match role %s", ErrInvalidEvent, e.EventType, e.Role)
	}
	return nil
}

func validateSentiment(e models.SentimentEvent) error {
	var missing []string
	if e.EventType != models.EventSentiment {
		missing = append(missing, "eventType")
	}
	if e.SessionID == "" {
		missing = append(missing, "sessionId")
	}
	if !validTurnID(e.SessionID, e.TurnID) {
		missing = append(missing, "turnId")
	}
	if e.Label == "" {
		missing = append(missing, "label")
	}
	if e.Timestamp <= 0 {
		missing = append(missing, "timestamp")
	}
	if math.IsNaN(e.Score) || e.Score < -1 || e.Score > 1 {
		missing = append(missing, "score")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: sentiment event: bad %s", ErrInvalidEvent, strings.Join(missing, ", "))
	}
	return nil
}

// validTurnID reports whether id is "<sessionId>-turn-<n>" with n >= 1.
func validTurnID(sessionID, id string) bool {
	if sessionID == "" || !strings.HasPrefix(id, sessionID+"-turn-") {
		return false
	}
	n, ok := turn.Sequence(id)
	return ok && n > 0 && id == fmt.Sprintf("%s-turn-%d", sessionID, n)
}
