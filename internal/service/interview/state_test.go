package interview

import (
	"errors"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateGreeting, "GREETING"},
		{StateSpeaking, "SPEAKING"},
		{StateListening, "LISTENING"},
		{StateAnalyzing, "ANALYZING"},
		{StateDeciding, "DECIDING"},
		{StateClosing, "CLOSING"},
		{StateClosed, "CLOSED"},
		{State(42), "UNKNOWN(42)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", int(tt.state), got, tt.want)
		}
	}
}

func TestState_IsTerminal(t *testing.T) {
	for _, s := range []State{StateGreeting, StateSpeaking, StateListening, StateAnalyzing, StateDeciding, StateClosing} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if !StateClosed.IsTerminal() {
		t.Error("CLOSED should be terminal")
	}
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		from, to State
		valid    bool
	}{
		{StateGreeting, StateSpeaking, true},
		{StateSpeaking, StateListening, true},
		{StateListening, StateAnalyzing, true},
		{StateListening, StateSpeaking, true},
		{StateAnalyzing, StateDeciding, true},
		{StateAnalyzing, StateSpeaking, true},
		{StateDeciding, StateSpeaking, true},
		{StateGreeting, StateClosing, true},
		{StateListening, StateClosing, true},
		{StateClosing, StateClosed, true},

		{StateGreeting, StateListening, false},
		{StateSpeaking, StateDeciding, false},
		{StateDeciding, StateListening, false},
		{StateClosing, StateSpeaking, false},
		{StateClosed, StateSpeaking, false},
		{StateClosed, StateClosing, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			err := CheckTransition(tt.from, tt.to)
			if tt.valid && err != nil {
				t.Errorf("expected valid transition, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestIsExitPhrase(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Well, goodbye then", true},
		{"GOODBYE", true},
		{"I think we should end interview now", true},
		{"End Interview", true},
		{"Good bye", false},
		{"I said hello", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := IsExitPhrase(tt.text); got != tt.want {
				t.Errorf("IsExitPhrase(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
