// Package analysis extracts the per-turn signals that feed sentiment fusion:
// facial emotion from a camera frame, prosody from a recorded utterance and
// filler-word statistics from the transcript.
package analysis

import (
	"context"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/service/capture"
)

// FaceAnalyzer classifies the dominant facial emotion in a frame.
// Implementations return a neutral record, not an error, when no face is
// found.
type FaceAnalyzer interface {
	AnalyzeFace(ctx context.Context, frame capture.Frame) (models.EmotionRecord, error)
}

// VoiceAnalyzer measures pitch and energy of a mono PCM WAV file.
// Implementations return a record without pitch, not an error, when no
// confident pitch is detected.
type VoiceAnalyzer interface {
	AnalyzeVoice(ctx context.Context, wavPath string) (models.VoiceRecord, error)
}

// NeutralFace is a FaceAnalyzer that always reports a neutral expression.
type NeutralFace struct{}

// AnalyzeFace returns models.NeutralEmotion.
func (NeutralFace) AnalyzeFace(context.Context, capture.Frame) (models.EmotionRecord, error) {
	return models.NeutralEmotion(), nil
}

// NeutralVoice is a VoiceAnalyzer that reports nothing.
type NeutralVoice struct{}

// AnalyzeVoice returns an empty record.
func (NeutralVoice) AnalyzeVoice(context.Context, string) (models.VoiceRecord, error) {
	return models.VoiceRecord{}, nil
}
