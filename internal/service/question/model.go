// Package question turns the conversation so far and the candidate's fused
// sentiment into the next interview question.
package question

import "context"

// Model is a text-in, text-out generative model.
type Model interface {
	// Name identifies the provider for logs and metrics.
	Name() string

	// Generate returns the raw reply to a single prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
