package interview

import (
	"errors"
	"fmt"
)

// State is a phase of the interview loop.
type State int

const (
	// StateGreeting - opening question is being prepared.
	StateGreeting State = iota
	// StateSpeaking - the interviewer is saying a line.
	StateSpeaking
	// StateListening - waiting for the candidate's answer.
	StateListening
	// StateAnalyzing - extracting face, voice and text signals.
	StateAnalyzing
	// StateDeciding - recording the answer and choosing the next question.
	StateDeciding
	// StateClosing - saying goodbye and releasing devices.
	StateClosing
	// StateClosed - the session is over. Terminal.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateGreeting:
		return "GREETING"
	case StateSpeaking:
		return "SPEAKING"
	case StateListening:
		return "LISTENING"
	case StateAnalyzing:
		return "ANALYZING"
	case StateDeciding:
		return "DECIDING"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s State) IsTerminal() bool {
	return s == StateClosed
}

// ErrInvalidTransition is returned for a move the loop never makes.
var ErrInvalidTransition = errors.New("invalid state transition")

// transitions lists the forward edges and back-edges of the loop. Every
// non-terminal state may also move to CLOSING.
//
//	GREETING → SPEAKING → LISTENING → ANALYZING → DECIDING → SPEAKING
//	                ↑          │            │
//	                └──────────┴────────────┘  (reprompt)
var transitions = map[State][]State{
	StateGreeting:  {StateSpeaking},
	StateSpeaking:  {StateListening},
	StateListening: {StateAnalyzing, StateSpeaking},
	StateAnalyzing: {StateDeciding, StateSpeaking},
	StateDeciding:  {StateSpeaking},
	StateClosing:   {StateClosed},
}

// CheckTransition returns nil if the loop may move from one state to another.
func CheckTransition(from, to State) error {
	if from.IsTerminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, from)
	}
	if to == StateClosing && from != StateClosing {
		return nil
	}
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
}
