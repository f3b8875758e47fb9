package stt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unintelligible", ErrUnintelligible, "unintelligible"},
		{"wrapped unintelligible", fmt.Errorf("google: %w", ErrUnintelligible), "unintelligible"},
		{"context deadline", context.DeadlineExceeded, "transport"},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), "transport"},
		{"wrapped grpc unavailable", fmt.Errorf("recognize: %w", status.Error(codes.Unavailable, "down")), "transport"},
		{"grpc unauthenticated", status.Error(codes.Unauthenticated, "no creds"), "auth"},
		{"grpc invalid argument", status.Error(codes.InvalidArgument, "bad audio"), "invalid_audio"},
		{"grpc quota", status.Error(codes.ResourceExhausted, "quota"), "quota"},
		{"plain error", errors.New("boom"), "provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorType(tt.err); got != tt.want {
				t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
