package models

import (
	"fmt"
	"strings"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// Turn is one entry of the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is the ordered, append-only record of an interview.
// The zero value is an empty history ready to use.
type History struct {
	turns []Turn
}

// Append adds a turn to the end of the history.
func (h *History) Append(role Role, content string) Turn {
	t := Turn{Role: role, Content: content}
	h.turns = append(h.turns, t)
	return t
}

// Len returns the number of turns recorded so far.
func (h *History) Len() int {
	return len(h.turns)
}

// Turns returns a copy of the recorded turns.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Render formats the history as one "Speaker: text" line per turn.
func (h *History) Render() string {
	var b strings.Builder
	for _, t := range h.turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role.Label(), t.Content)
	}
	return b.String()
}

// Label returns the display name of the role.
func (r Role) Label() string {
	switch r {
	case RoleInterviewer:
		return "Interviewer"
	case RoleCandidate:
		return "Candidate"
	default:
		return string(r)
	}
}
