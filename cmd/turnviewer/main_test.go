package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/transcript"
)

func TestFormatMessage(t *testing.T) {
	turn, _ := json.Marshal(models.TurnEvent{
		EventType: models.EventTurnCandidate,
		SessionID: "s1",
		TurnID:    "s1-turn-2",
		Role:      models.RoleCandidate,
		Content:   "I built the billing pipeline.",
	})
	sentiment, _ := json.Marshal(models.SentimentEvent{
		EventType:       models.EventSentiment,
		SessionID:       "s1",
		TurnID:          "s1-turn-2",
		DominantEmotion: models.EmotionHappy,
		Score:           0.7,
		Label:           "confident and positive",
	})

	tests := []struct {
		name    string
		payload []byte
		want    string
		wantErr bool
	}{
		{"turn", turn, "[s1-turn-2] Candidate: I built the billing pipeline.", false},
		{"sentiment", sentiment, "sentiment +0.70 (confident and positive)", false},
		{"unknown type", []byte(`{"eventType":"other"}`), "", true},
		{"not json", []byte("nope"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatMessage(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("formatMessage() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestPrintRecord(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rec := transcript.Record{
		SessionID:   "s1",
		StartedAt:   start,
		EndedAt:     start.Add(90 * time.Second),
		CloseReason: "candidate_exit",
		Turns: []models.TurnEvent{
			{TurnID: "s1-turn-1", Role: models.RoleInterviewer, Content: "Tell me about yourself."},
			{TurnID: "s1-turn-2", Role: models.RoleCandidate, Content: "Goodbye!"},
		},
		Sentiment: []models.SentimentEvent{
			{TurnID: "s1-turn-2", Score: -0.1, Label: "neutral"},
		},
	}

	var buf bytes.Buffer
	printRecord(&buf, rec)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Session s1 (candidate_exit, 1m30s)" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[3], "sentiment -0.10 (neutral)") {
		t.Errorf("sentiment line = %q", lines[3])
	}
}

func TestHubBroadcastDropsWhenFull(t *testing.T) {
	h := newHub()
	for i := 0; i < cap(h.broadcast)+5; i++ {
		h.Broadcast([]byte("x"))
	}
	if len(h.broadcast) != cap(h.broadcast) {
		t.Errorf("queued %d, want %d", len(h.broadcast), cap(h.broadcast))
	}
	if h.Clients() != 0 {
		t.Errorf("Clients() = %d, want 0", h.Clients())
	}
}

func TestHubStopped_RegisterAndUnregisterReturn(t *testing.T) {
	h := newHub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.run(ctx)

	finished := make(chan bool, 1)
	go func() {
		added := h.add(nil)
		h.remove(nil)
		finished <- added
	}()

	select {
	case added := <-finished:
		if added {
			t.Error("add should report false after the hub stopped")
		}
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after the hub stopped")
	}
}
