// Package interview runs the turn-taking loop of an adaptive mock interview:
// it asks a question, listens to the answer, scores the candidate's
// sentiment and asks a model for the next question until the candidate
// leaves or the loop cannot continue.
package interview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/observability/logging"
	"ai-interview-service/internal/observability/metrics"
	"ai-interview-service/internal/service/analysis"
	"ai-interview-service/internal/service/avatar"
	"ai-interview-service/internal/service/capture"
	"ai-interview-service/internal/service/fusion"
	"ai-interview-service/internal/service/question"
	"ai-interview-service/internal/service/stt"
	"ai-interview-service/internal/service/turn"
	"ai-interview-service/internal/transcript"
)

// QuestionGenerator produces the next interviewer line.
type QuestionGenerator interface {
	Generate(ctx context.Context, history *models.History, score float64) (*models.LLMResponse, error)
}

// EventPublisher receives every appended turn and fused score.
type EventPublisher interface {
	PublishTurn(ctx context.Context, event models.TurnEvent) error
	PublishSentiment(ctx context.Context, event models.SentimentEvent) error
}

// Deps are the collaborators of a session. Camera, Microphone,
// Transcriber, Generator and Speaker are required.
type Deps struct {
	Camera      capture.Camera
	Microphone  capture.Microphone
	Face        analysis.FaceAnalyzer
	Voice       analysis.VoiceAnalyzer
	Transcriber stt.Transcriber
	Fillers     *analysis.FillerCounter
	Fuser       *fusion.Fuser
	Generator   QuestionGenerator
	Speaker     avatar.Speaker
	Display     avatar.Display
	Publisher   EventPublisher
	Metrics     *metrics.Metrics
}

// Options tune the loop.
type Options struct {
	Listen capture.ListenOptions
	// MaxConsecutiveRetries caps reprompts in a row before the session
	// closes. Zero or less means no cap.
	MaxConsecutiveRetries int
	FrameCaptureAttempts  int
	FrameRetryDelay       time.Duration
	// TempDir holds utterance files while they are analyzed. Empty means
	// os.TempDir().
	TempDir string
	// OnStateChange, if set, is called after every transition.
	OnStateChange func(from, to State)
}

// DefaultOptions returns the stock loop settings.
func DefaultOptions() Options {
	return Options{
		Listen:                capture.DefaultListenOptions(),
		MaxConsecutiveRetries: 3,
		FrameCaptureAttempts:  3,
		FrameRetryDelay:       100 * time.Millisecond,
	}
}

// Summary is the outcome of Run.
type Summary struct {
	SessionID   string
	StartedAt   time.Time
	EndedAt     time.Time
	CloseReason string
	History     []models.Turn
	Turns       []models.TurnEvent
	Sentiment   []models.SentimentEvent
}

// Record converts the summary to its persisted form.
func (s Summary) Record() transcript.Record {
	return transcript.Record{
		SessionID:   s.SessionID,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		CloseReason: s.CloseReason,
		Turns:       s.Turns,
		Sentiment:   s.Sentiment,
	}
}

// Session is one interview. It is driven by a single goroutine and is not
// safe for concurrent use.
type Session struct {
	id      string
	deps    Deps
	opts    Options
	history models.History
	turns   *turn.Generator
	state   State
	retries int

	turnEvents []models.TurnEvent
	sentiment  []models.SentimentEvent

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	logger zerolog.Logger
}

// NewSession validates deps and prepares a session. An empty id is replaced
// by a random UUID.
func NewSession(id string, deps Deps, opts Options) (*Session, error) {
	var missing []string
	if deps.Camera == nil {
		missing = append(missing, "camera")
	}
	if deps.Microphone == nil {
		missing = append(missing, "microphone")
	}
	if deps.Transcriber == nil {
		missing = append(missing, "transcriber")
	}
	if deps.Generator == nil {
		missing = append(missing, "generator")
	}
	if deps.Speaker == nil {
		missing = append(missing, "speaker")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("interview: missing %s", strings.Join(missing, ", "))
	}

	if deps.Face == nil {
		deps.Face = analysis.NeutralFace{}
	}
	if deps.Voice == nil {
		deps.Voice = analysis.NeutralVoice{}
	}
	if deps.Fillers == nil {
		deps.Fillers = analysis.NewFillerCounter(analysis.DefaultFillers)
	}
	if deps.Fuser == nil {
		deps.Fuser = fusion.NewDefault()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.DefaultMetrics
	}
	if opts.FrameCaptureAttempts <= 0 {
		opts.FrameCaptureAttempts = 1
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if id == "" {
		id = uuid.NewString()
	}

	return &Session{
		id:     id,
		deps:   deps,
		opts:   opts,
		turns:  turn.New(),
		state:  StateGreeting,
		now:    time.Now,
		sleep:  sleepCtx,
		logger: logging.WithSession(id),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current loop state.
func (s *Session) State() State { return s.state }

// Run conducts the interview until it closes. Camera and microphone are
// released on every return path. The returned error is non-nil only for
// device failures and cancellation; a failed question generation closes
// the session normally with CloseGenerationFailed.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	started := s.now()
	s.deps.Metrics.RecordSessionStart()
	s.logger.Info().Msg("Interview started")

	defer s.release()

	reason, err := s.loop(ctx)

	s.transition(StateClosing)
	if reason != CloseCancelled {
		s.speak(ctx, line(ClosingPrompt, models.AvatarSmiling))
	}

	ended := s.now()
	s.deps.Metrics.RecordSessionEnd(reason, ended.Sub(started).Seconds())

	ev := s.logger.Info()
	if err != nil {
		ev = s.logger.Error().Err(err)
	}
	ev.Str("reason", reason).
		Int("turns", s.history.Len()).
		Dur("duration", ended.Sub(started)).
		Msg("Interview closed")

	return Summary{
		SessionID:   s.id,
		StartedAt:   started,
		EndedAt:     ended,
		CloseReason: reason,
		History:     s.history.Turns(),
		Turns:       append([]models.TurnEvent(nil), s.turnEvents...),
		Sentiment:   append([]models.SentimentEvent(nil), s.sentiment...),
	}, err
}

func (s *Session) loop(ctx context.Context) (string, error) {
	s.appendTurn(ctx, models.RoleInterviewer, GreetingPrompt)
	next := line(GreetingPrompt, models.AvatarSmiling)

	for {
		if err := ctx.Err(); err != nil {
			return CloseCancelled, err
		}

		s.transition(StateSpeaking)
		s.speak(ctx, next)

		s.transition(StateListening)
		s.show(models.AvatarNeutral)
		utt, err := s.deps.Microphone.Listen(ctx, s.opts.Listen)
		if err != nil {
			if ctx.Err() != nil {
				return CloseCancelled, ctx.Err()
			}
			if !errors.Is(err, capture.ErrListenTimeout) {
				return CloseDeviceError, fmt.Errorf("listen: %w", err)
			}
			s.deps.Metrics.RecordListenTimeout()
			s.logger.Info().Msg("No speech detected")
			if !s.retry(retryListenTimeout) {
				return CloseRetriesExhausted, nil
			}
			next = line(NoSpeechPrompt, models.AvatarThinking)
			continue
		}

		s.transition(StateAnalyzing)
		s.show(models.AvatarThinking)
		obs, err := s.analyze(ctx, utt)
		if err != nil {
			if ctx.Err() != nil {
				return CloseCancelled, ctx.Err()
			}
			reason, prompt := retryAnalysisError, AnalysisErrorPrompt
			if errors.Is(err, stt.ErrUnintelligible) {
				reason, prompt = retryUnintelligible, UnintelligiblePrompt
			}
			s.logger.Warn().Err(err).Str("reason", reason).Msg("Answer could not be analyzed")
			if !s.retry(reason) {
				return CloseRetriesExhausted, nil
			}
			next = line(prompt, models.AvatarThinking)
			continue
		}
		s.retries = 0

		s.transition(StateDeciding)
		turnId := s.appendTurn(ctx, models.RoleCandidate, obs.text)
		if IsExitPhrase(obs.text) {
			return CloseCandidateExit, nil
		}

		result := s.deps.Fuser.Fuse(obs.face, obs.voice, obs.textRec)
		s.recordSentiment(ctx, turnId, obs, result)

		resp, err := s.deps.Generator.Generate(ctx, &s.history, result.Score)
		if err != nil {
			if ctx.Err() != nil {
				return CloseCancelled, ctx.Err()
			}
			s.logger.Error().Err(err).Msg("Failed to generate next question, ending interview")
			return CloseGenerationFailed, nil
		}
		s.appendTurn(ctx, models.RoleInterviewer, resp.QuestionText)
		next = *resp
	}
}

// retry counts one reprompt and reports whether another is allowed.
func (s *Session) retry(reason string) bool {
	s.retries++
	s.deps.Metrics.RecordRetry(reason)
	if s.opts.MaxConsecutiveRetries > 0 && s.retries > s.opts.MaxConsecutiveRetries {
		s.logger.Warn().
			Int("retries", s.retries).
			Int("max", s.opts.MaxConsecutiveRetries).
			Msg("Too many consecutive retries")
		return false
	}
	return true
}

func (s *Session) transition(to State) {
	from := s.state
	if from == to {
		return
	}
	if err := CheckTransition(from, to); err != nil {
		s.logger.Warn().Err(err).Msg("Unexpected state transition")
	}
	s.state = to
	s.logger.Debug().Str("from", from.String()).Str("to", to.String()).Msg("State changed")
	if s.opts.OnStateChange != nil {
		s.opts.OnStateChange(from, to)
	}
}

func (s *Session) speak(ctx context.Context, l models.LLMResponse) {
	if err := s.deps.Speaker.Speak(ctx, l.QuestionText, l.SuggestedAvatarEmotion); err != nil {
		s.logger.Warn().Err(err).Msg("Speaker failed")
	}
}

func (s *Session) show(emotion models.AvatarEmotion) {
	if s.deps.Display != nil {
		s.deps.Display.Show(emotion)
	}
}

func (s *Session) appendTurn(ctx context.Context, role models.Role, content string) string {
	turnId := s.turns.Next(s.id)
	s.history.Append(role, content)
	s.deps.Metrics.RecordTurn(string(role))

	event := models.TurnEvent{
		EventType: models.EventForRole(role),
		SessionID: s.id,
		TurnID:    turnId,
		Role:      role,
		Content:   content,
		Timestamp: s.now().UnixMilli(),
	}
	s.turnEvents = append(s.turnEvents, event)

	turnLogger := logging.WithTurn(s.id, turnId)
	turnLogger.Info().
		Str("role", string(role)).
		Str("content", content).
		Msg("Turn recorded")

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishTurn(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("turnId", turnId).Msg("Failed to publish turn event")
		}
	}
	return turnId
}

func (s *Session) recordSentiment(ctx context.Context, turnId string, obs *observation, r fusion.Result) {
	label := question.SentimentLabel(r.Score)
	s.deps.Metrics.RecordSentiment(r.Score, label)

	event := models.SentimentEvent{
		EventType:       models.EventSentiment,
		SessionID:       s.id,
		TurnID:          turnId,
		DominantEmotion: obs.face.DominantEmotion,
		PitchHz:         obs.voice.AveragePitchHz,
		FillerRatio:     obs.textRec.FillerRatio,
		FaceScore:       r.FaceScore,
		VoiceScore:      r.VoiceScore,
		TextScore:       r.TextScore,
		Score:           r.Score,
		Label:           label,
		Timestamp:       s.now().UnixMilli(),
	}
	s.sentiment = append(s.sentiment, event)

	turnLogger := logging.WithTurn(s.id, turnId)
	turnLogger.Info().
		Float64("score", r.Score).
		Str("label", label).
		Str("emotion", string(obs.face.DominantEmotion)).
		Msg("Sentiment fused")

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishSentiment(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("turnId", turnId).Msg("Failed to publish sentiment event")
		}
	}
}

// release closes both devices. Failures are logged only.
func (s *Session) release() {
	if err := s.deps.Camera.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to release camera")
	}
	if err := s.deps.Microphone.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to release microphone")
	}
	s.transition(StateClosed)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func tempUtterancePath(dir string) string {
	return filepath.Join(dir, "utterance-"+uuid.NewString()+".wav")
}
