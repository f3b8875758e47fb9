package question

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiModel implements Model on the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// Compile-time interface check.
var _ Model = (*GeminiModel)(nil)

// NewGeminiModel creates a Gemini-backed model. An empty apiKey lets the
// SDK read GOOGLE_API_KEY / GEMINI_API_KEY from the environment.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiModel{client: client, model: model}, nil
}

// Name returns the provider identifier.
func (m *GeminiModel) Name() string { return "gemini" }

// Generate sends prompt to Gemini and asks for a JSON reply.
func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
