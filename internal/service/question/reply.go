package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"ai-interview-service/internal/models"
)

var (
	// ErrGeneration is wrapped by every question generation failure.
	ErrGeneration = errors.New("question generation failed")
	// ErrMalformedReply means the model answered but not with the expected object.
	ErrMalformedReply = errors.New("malformed model reply")
)

// DecodeReply parses a model reply into an LLMResponse. The reply must be a
// single JSON object with exactly question_text and suggested_avatar_emotion,
// optionally wrapped in a code fence. Anything else is ErrMalformedReply.
func DecodeReply(text string) (*models.LLMResponse, error) {
	cleaned := cleanModelOutput(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedReply)
	}

	var raw struct {
		QuestionText           *string `json:"question_text"`
		SuggestedAvatarEmotion *string `json:"suggested_avatar_emotion"`
	}
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedReply)
	}

	if raw.QuestionText == nil || strings.TrimSpace(*raw.QuestionText) == "" {
		return nil, fmt.Errorf("%w: missing question_text", ErrMalformedReply)
	}
	if raw.SuggestedAvatarEmotion == nil {
		return nil, fmt.Errorf("%w: missing suggested_avatar_emotion", ErrMalformedReply)
	}
	emotion := models.AvatarEmotion(*raw.SuggestedAvatarEmotion)
	if !emotion.Valid() {
		return nil, fmt.Errorf("%w: unsupported suggested_avatar_emotion %q", ErrMalformedReply, emotion)
	}

	return &models.LLMResponse{
		QuestionText:           strings.TrimSpace(*raw.QuestionText),
		SuggestedAvatarEmotion: emotion,
	}, nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
