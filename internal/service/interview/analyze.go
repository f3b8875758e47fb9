package interview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/service/capture"
	"ai-interview-service/internal/service/stt"
)

// observation holds the signals extracted from one answer.
type observation struct {
	text    string
	face    models.EmotionRecord
	voice   models.VoiceRecord
	textRec models.TextRecord
}

// analyze extracts all signals for one utterance. Face problems degrade to
// a neutral record; transcription and voice errors are returned. The
// utterance file is removed before analyze returns.
func (s *Session) analyze(ctx context.Context, utt *capture.Utterance) (*observation, error) {
	obs := &observation{face: s.captureFace(ctx)}

	path, err := s.writeUtterance(utt)
	if err != nil {
		return nil, err
	}
	defer s.removeUtterance(path)

	text, err := s.transcribe(ctx, utt.Audio)
	if err != nil {
		return nil, err
	}
	obs.text = text

	voice, err := s.deps.Voice.AnalyzeVoice(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("voice analysis: %w", err)
	}
	obs.voice = voice
	obs.textRec = s.deps.Fillers.Count(text)

	return obs, nil
}

// captureFace reads a frame with bounded retries and classifies it.
func (s *Session) captureFace(ctx context.Context) models.EmotionRecord {
	var (
		frame capture.Frame
		err   error
	)
	for attempt := 1; attempt <= s.opts.FrameCaptureAttempts; attempt++ {
		frame, err = s.deps.Camera.ReadFrame(ctx)
		if err == nil {
			break
		}
		s.logger.Debug().Err(err).Int("attempt", attempt).Msg("Frame capture failed")
		if attempt < s.opts.FrameCaptureAttempts {
			if serr := s.sleep(ctx, s.opts.FrameRetryDelay); serr != nil {
				break
			}
		}
	}
	if err != nil {
		s.deps.Metrics.RecordFrameCaptureFailure()
		s.logger.Warn().Err(err).
			Int("attempts", s.opts.FrameCaptureAttempts).
			Msg("No camera frame, using neutral expression")
		return models.NeutralEmotion()
	}

	rec, err := s.deps.Face.AnalyzeFace(ctx, frame)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Face analysis failed, using neutral expression")
		return models.NeutralEmotion()
	}
	return rec
}

func (s *Session) transcribe(ctx context.Context, wav []byte) (string, error) {
	provider := s.deps.Transcriber.Name()

	start := time.Now()
	text, err := s.deps.Transcriber.Transcribe(ctx, wav)
	s.deps.Metrics.RecordSTTLatency(provider, time.Since(start).Seconds())
	if err == nil && strings.TrimSpace(text) == "" {
		err = stt.ErrUnintelligible
	}
	if err != nil {
		s.deps.Metrics.RecordSTTError(provider, stt.ErrorType(err))
		if errors.Is(err, stt.ErrUnintelligible) {
			return "", err
		}
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// writeUtterance persists the audio to a uniquely named file so the voice
// analyzer can read it.
func (s *Session) writeUtterance(utt *capture.Utterance) (string, error) {
	path := tempUtterancePath(s.opts.TempDir)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create utterance file: %w", err)
	}
	if _, err := f.Write(utt.Audio); err != nil {
		f.Close()
		s.removeUtterance(path)
		return "", fmt.Errorf("write utterance file: %w", err)
	}
	if err := f.Close(); err != nil {
		s.removeUtterance(path)
		return "", fmt.Errorf("close utterance file: %w", err)
	}
	return path, nil
}

func (s *Session) removeUtterance(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove utterance file")
	}
}
