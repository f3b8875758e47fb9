// Package stt defines the interface for Speech-to-Text adapters.
package stt

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrUnintelligible means the provider heard audio but could not recognize
// any speech in it. It is distinct from transport and provider errors.
var ErrUnintelligible = errors.New("speech was unintelligible")

// Transcriber turns one recorded utterance into text.
type Transcriber interface {
	// Name identifies the provider for logs and metrics.
	Name() string

	// Transcribe returns the UTF-8 transcript of a WAV-encoded utterance.
	// It returns ErrUnintelligible when no speech could be recognized.
	Transcribe(ctx context.Context, wav []byte) (string, error)

	// Close releases provider resources.
	Close() error
}

// ErrorType classifies a Transcribe error for metrics labels.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnintelligible):
		return "unintelligible"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "transport"
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return "transport"
	case codes.Unauthenticated, codes.PermissionDenied:
		return "auth"
	case codes.InvalidArgument:
		return "invalid_audio"
	case codes.ResourceExhausted:
		return "quota"
	default:
		return "provider"
	}
}
