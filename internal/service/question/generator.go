package question

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/observability/logging"
	"ai-interview-service/internal/observability/metrics"
)

// Generator produces the next interview question from the history and the
// candidate's fused sentiment score.
type Generator struct {
	model   Model
	persona Persona
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewGenerator creates a generator. A nil m uses metrics.DefaultMetrics.
func NewGenerator(model Model, persona Persona, m *metrics.Metrics) *Generator {
	if m == nil {
		m = metrics.DefaultMetrics
	}
	return &Generator{
		model:   model,
		persona: persona,
		metrics: m,
		logger:  logging.WithProvider("question", model.Name()),
	}
}

// Generate asks the model for the next question. Every failure, whether the
// model call or the reply decode, wraps ErrGeneration.
func (g *Generator) Generate(ctx context.Context, history *models.History, score float64) (*models.LLMResponse, error) {
	label := SentimentLabel(score)
	prompt := BuildPrompt(g.persona, label, history)

	start := time.Now()
	text, err := g.model.Generate(ctx, prompt)
	if err != nil {
		g.metrics.RecordLLMCall(g.model.Name(), "model_error", time.Since(start).Seconds())
		g.logger.Error().Err(err).Str("label", label).Msg("Model call failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrGeneration, g.model.Name(), err)
	}

	resp, err := DecodeReply(text)
	if err != nil {
		g.metrics.RecordLLMCall(g.model.Name(), "malformed_reply", time.Since(start).Seconds())
		g.logger.Error().Err(err).Str("reply", text).Msg("Model reply rejected")
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	g.metrics.RecordLLMCall(g.model.Name(), "", time.Since(start).Seconds())
	g.logger.Debug().
		Str("label", label).
		Float64("score", score).
		Str("avatarEmotion", string(resp.SuggestedAvatarEmotion)).
		Dur("latency", time.Since(start)).
		Msg("Generated next question")
	return resp, nil
}
