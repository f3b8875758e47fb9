// Package capture defines the camera and microphone collaborators used by
// the interview loop, plus file-backed implementations that replay recorded
// frames and utterances.
package capture

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDeviceUnavailable means a device could not be opened or was used
	// after Close. It is fatal at startup.
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	// ErrListenTimeout means no speech started within the onset timeout.
	ErrListenTimeout = errors.New("no speech detected before onset timeout")
)

// Frame is one still image read from the camera.
type Frame struct {
	Data       []byte
	Format     string // "jpeg" or "png"
	CapturedAt time.Time
}

// Utterance is one recorded phrase encoded as a mono PCM WAV.
type Utterance struct {
	Audio    []byte
	Format   WAVFormat
	Duration time.Duration
}

// ListenOptions bounds a single Listen call.
type ListenOptions struct {
	// OnsetTimeout is how long to wait for speech to begin.
	OnsetTimeout time.Duration
	// PhraseLimit caps the recorded phrase length.
	PhraseLimit time.Duration
}

// DefaultListenOptions returns a 10s onset timeout and 30s phrase limit.
func DefaultListenOptions() ListenOptions {
	return ListenOptions{OnsetTimeout: 10 * time.Second, PhraseLimit: 30 * time.Second}
}

// Camera yields still frames.
type Camera interface {
	ReadFrame(ctx context.Context) (Frame, error)
	Close() error
}

// Microphone records one utterance per call.
type Microphone interface {
	// Listen blocks until a phrase is recorded. It returns ErrListenTimeout
	// if nothing is heard within opts.OnsetTimeout.
	Listen(ctx context.Context, opts ListenOptions) (*Utterance, error)
	Close() error
}
