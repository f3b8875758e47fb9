package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ai-interview-service/internal/config"
	"ai-interview-service/internal/events"
	"ai-interview-service/internal/observability"
	"ai-interview-service/internal/observability/logging"
	"ai-interview-service/internal/observability/metrics"
	"ai-interview-service/internal/service/analysis"
	"ai-interview-service/internal/service/avatar"
	"ai-interview-service/internal/service/capture"
	"ai-interview-service/internal/service/fusion"
	"ai-interview-service/internal/service/interview"
	"ai-interview-service/internal/service/question"
	"ai-interview-service/internal/service/stt"
	"ai-interview-service/internal/service/stt/google"
	"ai-interview-service/internal/service/stt/mock"
	"ai-interview-service/internal/transcript"
)

// Application holds process-wide state for the interviewer.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Config
	Metrics     *metrics.Metrics

	obs       *observability.Server
	publisher *events.Publisher
	stt       stt.Transcriber
}

// New constructs a new Application from the provided configuration and
// initializes the global logger.
func New(cfg *config.Config) *Application {
	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     cfg.Observability.LogFormat,
		TimeFormat: time.RFC3339,
	})

	a := &Application{
		Cfg:     cfg,
		Metrics: metrics.DefaultMetrics,
		Logger: log.With().
			Str("service", "ai-interview-service").
			Str("component", "application").
			Logger(),
	}

	a.Logger.Info().
		Str("logLevel", cfg.Observability.LogLevel).
		Str("role", cfg.Interview.Role).
		Msg("AI interview application created")
	return a
}

// Start starts the observability endpoint, if configured.
func (a *Application) Start() error {
	startLogger := a.Logger.With().
		Str("method", "Start").
		Logger()

	a.StartupTime = time.Now().UTC()
	if addr := a.Cfg.Observability.MetricsAddr; addr != "" {
		a.obs = observability.NewServer(addr)
		a.obs.Start()
	}

	startLogger.Info().
		Time("startupTime", a.StartupTime).
		Bool("metrics", a.obs != nil).
		Msg("AI interview application starting")
	return nil
}

// NewSession wires the configured devices, analyzers and providers into a
// ready-to-run interview session.
func (a *Application) NewSession(ctx context.Context) (*interview.Session, error) {
	cfg := a.Cfg

	camera, err := capture.OpenStillCamera(cfg.Devices.CameraSource)
	if err != nil {
		return nil, fmt.Errorf("open camera: %w", err)
	}
	mic, err := capture.OpenReplayMicrophone(cfg.Devices.MicSource)
	if err != nil {
		camera.Close()
		return nil, fmt.Errorf("open microphone: %w", err)
	}

	transcriber, err := newTranscriber(ctx, cfg.STT)
	if err != nil {
		camera.Close()
		mic.Close()
		return nil, err
	}
	a.stt = transcriber

	model, err := newModel(ctx, cfg.LLM)
	if err != nil {
		camera.Close()
		mic.Close()
		return nil, err
	}

	profile := fusion.DefaultProfile()
	if cfg.Interview.FusionProfile != "" {
		if profile, err = fusion.LoadProfile(cfg.Interview.FusionProfile); err != nil {
			camera.Close()
			mic.Close()
			return nil, err
		}
	}

	a.publisher = events.New(&events.Config{
		Enabled:        cfg.Kafka.Enabled,
		Brokers:        cfg.Kafka.Brokers,
		TopicTurns:     cfg.Kafka.TopicTurns,
		TopicSentiment: cfg.Kafka.TopicSentiment,
		Principal:      cfg.Kafka.Principal,
	}, a.Metrics)

	name := cfg.Interview.InterviewerName
	deps := interview.Deps{
		Camera:      camera,
		Microphone:  mic,
		Face:        faceAnalyzer(cfg.Analyzers),
		Voice:       voiceAnalyzer(cfg.Analyzers),
		Transcriber: transcriber,
		Fillers:     analysis.NewFillerCounter(analysis.DefaultFillers),
		Fuser:       fusion.New(profile),
		Generator: question.NewGenerator(model, question.Persona{
			Name: name,
			Role: cfg.Interview.Role,
		}, a.Metrics),
		Publisher: a.publisher,
		Metrics:   a.Metrics,
	}
	console := avatar.NewConsole(os.Stdout, avatar.NewSet(cfg.Devices.AvatarDir), name, 0)
	deps.Speaker = console
	deps.Display = console

	opts := interview.DefaultOptions()
	opts.Listen = capture.ListenOptions{
		OnsetTimeout: cfg.Interview.OnsetTimeout,
		PhraseLimit:  cfg.Interview.PhraseLimit,
	}
	opts.MaxConsecutiveRetries = cfg.Interview.MaxConsecutiveRetries
	opts.FrameCaptureAttempts = cfg.Interview.FrameCaptureAttempts
	opts.FrameRetryDelay = cfg.Interview.FrameRetryDelay
	opts.TempDir = cfg.Interview.TempDir

	return interview.NewSession("", deps, opts)
}

// Run conducts one interview and saves its record when an output directory
// is configured.
func (a *Application) Run(ctx context.Context) (interview.Summary, error) {
	session, err := a.NewSession(ctx)
	if err != nil {
		return interview.Summary{}, err
	}
	if a.obs != nil {
		a.obs.SetReady(true)
		defer a.obs.SetReady(false)
	}

	sum, runErr := session.Run(ctx)

	if dir := a.Cfg.Interview.OutputDir; dir != "" {
		path, err := transcript.NewWriter(dir).Write(sum.Record())
		if err != nil {
			a.Logger.Error().Err(err).Str("sessionId", sum.SessionID).Msg("Failed to save session record")
			return sum, errors.Join(runErr, err)
		}
		a.Logger.Info().Str("sessionId", sum.SessionID).Str("path", path).Msg("Session record saved")
	}
	return sum, runErr
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	shutdownLogger := a.Logger.With().
		Str("method", "Shutdown").
		Logger()

	if a.stt != nil {
		if err := a.stt.Close(); err != nil {
			shutdownLogger.Warn().Err(err).Msg("Failed to close transcriber")
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			shutdownLogger.Warn().Err(err).Msg("Failed to close publisher")
		}
	}
	if a.obs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.obs.Shutdown(ctx); err != nil {
			shutdownLogger.Warn().Err(err).Msg("Failed to stop observability server")
		}
	}

	shutdownLogger.Info().Msg("AI interview application shutting down")
}

func newTranscriber(ctx context.Context, cfg config.STTConfig) (stt.Transcriber, error) {
	switch cfg.Provider {
	case "google":
		gcfg := google.DefaultConfig()
		gcfg.LanguageCode = cfg.LanguageCode
		gcfg.SampleRateHz = cfg.SampleRateHz
		gcfg.AudioEncoding = cfg.AudioEncoding
		a, err := google.New(ctx, gcfg)
		if err != nil {
			return nil, fmt.Errorf("create google transcriber: %w", err)
		}
		return a, nil
	case "mock", "":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown STT provider %q", cfg.Provider)
	}
}

func newModel(ctx context.Context, cfg config.LLMConfig) (question.Model, error) {
	switch cfg.Provider {
	case "gemini":
		m, err := question.NewGeminiModel(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "mock", "":
		return question.NewScriptedModel(nil), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

func faceAnalyzer(cfg config.AnalyzerConfig) analysis.FaceAnalyzer {
	if cfg.FaceURL == "" {
		return analysis.NeutralFace{}
	}
	return analysis.FaceClient{Client: analysis.NewClient(cfg.FaceURL, cfg.Timeout)}
}

func voiceAnalyzer(cfg config.AnalyzerConfig) analysis.VoiceAnalyzer {
	if cfg.VoiceURL == "" {
		return analysis.NeutralVoice{}
	}
	return analysis.VoiceClient{Client: analysis.NewClient(cfg.VoiceURL, cfg.Timeout)}
}
