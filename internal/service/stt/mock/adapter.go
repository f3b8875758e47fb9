// Package mock provides a scripted STT adapter for running interviews
// without cloud credentials.
package mock

import (
	"context"
	"sync"
	"time"

	"ai-interview-service/internal/service/stt"
)

// Answer is one scripted transcription result. An empty Text simulates
// speech the provider could not recognize.
type Answer struct {
	Text  string
	Delay time.Duration
}

// DefaultAnswers is a short candidate script that ends the interview.
var DefaultAnswers = []Answer{
	{Text: "Hi, I'm a backend engineer with about five years of experience, mostly in Go and distributed systems.", Delay: 50 * time.Millisecond},
	{Text: "Um, so, I guess the hardest part was, uh, migrating the billing service without downtime.", Delay: 50 * time.Millisecond},
	{Text: "", Delay: 20 * time.Millisecond},
	{Text: "We ran both versions side by side and compared their outputs before switching traffic.", Delay: 50 * time.Millisecond},
	{Text: "I think that covers it. Goodbye!", Delay: 50 * time.Millisecond},
}

// Adapter implements stt.Transcriber by replaying a script in order,
// cycling when it runs out. The audio content is ignored.
type Adapter struct {
	mu      sync.Mutex
	answers []Answer
	next    int
	calls   int
	closed  bool
}

// Compile-time interface check.
var _ stt.Transcriber = (*Adapter)(nil)

// New creates a mock adapter using DefaultAnswers.
func New() *Adapter {
	return NewWithScript(DefaultAnswers)
}

// NewWithScript creates a mock adapter replaying answers.
func NewWithScript(answers []Answer) *Adapter {
	if len(answers) == 0 {
		answers = DefaultAnswers
	}
	return &Adapter{answers: append([]Answer(nil), answers...)}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string { return "mock" }

// Transcribe returns the next scripted answer after its simulated delay.
func (a *Adapter) Transcribe(ctx context.Context, wav []byte) (string, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return "", context.Canceled
	}
	ans := a.answers[a.next%len(a.answers)]
	a.next++
	a.calls++
	a.mu.Unlock()

	if ans.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(ans.Delay):
		}
	}

	if ans.Text == "" {
		return "", stt.ErrUnintelligible
	}
	return ans.Text, nil
}

// Calls returns how many times Transcribe has been invoked.
func (a *Adapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Close marks the adapter closed. Further Transcribe calls fail.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}
