package question

import (
	"context"
	"encoding/json"
	"sync"

	"ai-interview-service/internal/models"
)

// DefaultScript is the sequence of replies returned by ScriptedModel.
var DefaultScript = []models.LLMResponse{
	{
		QuestionText:           "Thanks for sharing. What project are you most proud of, and what was your role in it?",
		SuggestedAvatarEmotion: models.AvatarEncouragingNod,
	},
	{
		QuestionText:           "Tell me about a time you disagreed with a teammate on a technical decision. How did you resolve it?",
		SuggestedAvatarEmotion: models.AvatarThinking,
	},
	{
		QuestionText:           "How would you design a rate limiter for a public API?",
		SuggestedAvatarEmotion: models.AvatarNeutral,
	},
	{
		QuestionText:           "What are you hoping to learn in your next role?",
		SuggestedAvatarEmotion: models.AvatarSmiling,
	},
}

// ScriptedModel is a credential-free Model that cycles through a fixed
// script, rendered the way a real model would answer.
type ScriptedModel struct {
	mu     sync.Mutex
	script []models.LLMResponse
	next   int
}

// Compile-time interface check.
var _ Model = (*ScriptedModel)(nil)

// NewScriptedModel creates a scripted model. An empty script uses DefaultScript.
func NewScriptedModel(script []models.LLMResponse) *ScriptedModel {
	if len(script) == 0 {
		script = DefaultScript
	}
	return &ScriptedModel{script: script}
}

// Name returns the provider identifier.
func (m *ScriptedModel) Name() string { return "mock" }

// Generate returns the next scripted reply wrapped in a JSON code fence.
func (m *ScriptedModel) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	reply := m.script[m.next%len(m.script)]
	m.next++
	m.mu.Unlock()

	b, err := json.Marshal(reply)
	if err != nil {
		return "", err
	}
	return "```json\n" + string(b) + "\n```", nil
}
