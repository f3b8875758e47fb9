package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	Interview     InterviewConfig
	Devices       DeviceConfig
	Analyzers     AnalyzerConfig
	LLM           LLMConfig
	STT           STTConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// InterviewConfig controls the interview loop.
type InterviewConfig struct {
	Role                  string
	InterviewerName       string
	OnsetTimeout          time.Duration
	PhraseLimit           time.Duration
	MaxConsecutiveRetries int
	FrameCaptureAttempts  int
	FrameRetryDelay       time.Duration
	TempDir               string
	OutputDir             string
	FusionProfile         string
}

// DeviceConfig points at the capture sources and avatar assets.
type DeviceConfig struct {
	CameraSource string
	MicSource    string
	AvatarDir    string
}

// AnalyzerConfig holds the external face and voice analyzer endpoints.
// An empty URL selects the neutral stub analyzer.
type AnalyzerConfig struct {
	FaceURL  string
	VoiceURL string
	Timeout  time.Duration
}

// LLMConfig selects the question model.
type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
}

// STTConfig selects and tunes the transcriber.
type STTConfig struct {
	Provider      string
	LanguageCode  string
	SampleRateHz  int
	AudioEncoding string
}

// KafkaConfig configures event publishing.
type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	TopicTurns     string
	TopicSentiment string
	Principal      string
}

// ObservabilityConfig configures logging and the metrics endpoint.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Load reads the configuration from the environment, falling back to
// defaults for unset or unparsable values.
func Load() *Config {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-ai-interviewer")

	return &Config{
		Interview: InterviewConfig{
			Role:                  envOrDefault("INTERVIEW_ROLE", "Software Engineer"),
			InterviewerName:       envOrDefault("INTERVIEWER_NAME", "Gemini"),
			OnsetTimeout:          envOrDefaultDuration("LISTEN_ONSET_TIMEOUT", 10*time.Second),
			PhraseLimit:           envOrDefaultDuration("LISTEN_PHRASE_LIMIT", 30*time.Second),
			MaxConsecutiveRetries: envOrDefaultInt("MAX_CONSECUTIVE_RETRIES", 3),
			FrameCaptureAttempts:  envOrDefaultInt("FRAME_CAPTURE_ATTEMPTS", 3),
			FrameRetryDelay:       envOrDefaultDuration("FRAME_RETRY_DELAY", 100*time.Millisecond),
			TempDir:               envOrDefault("TEMP_DIR", os.TempDir()),
			OutputDir:             os.Getenv("OUTPUT_DIR"),
			FusionProfile:         os.Getenv("FUSION_PROFILE"),
		},
		Devices: DeviceConfig{
			CameraSource: envOrDefault("CAMERA_SOURCE", "testdata/frames"),
			MicSource:    envOrDefault("MIC_SOURCE", "testdata/utterances"),
			AvatarDir:    envOrDefault("AVATAR_DIR", "avatar_images"),
		},
		Analyzers: AnalyzerConfig{
			FaceURL:  os.Getenv("FACE_ANALYZER_URL"),
			VoiceURL: os.Getenv("VOICE_ANALYZER_URL"),
			Timeout:  envOrDefaultDuration("ANALYZER_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			Provider: envOrDefault("LLM_PROVIDER", "mock"),
			Model:    envOrDefault("LLM_MODEL", "gemini-2.5-flash"),
			APIKey:   os.Getenv("GOOGLE_API_KEY"),
		},
		STT: STTConfig{
			Provider:      envOrDefault("STT_PROVIDER", "mock"),
			LanguageCode:  envOrDefault("STT_LANGUAGE_CODE", "en-US"),
			SampleRateHz:  envOrDefaultInt("STT_SAMPLE_RATE_HZ", 16000),
			AudioEncoding: envOrDefault("STT_AUDIO_ENCODING", "LINEAR16"),
		},
		Kafka: KafkaConfig{
			Enabled:        envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:        envOrDefaultList("KAFKA_BROKERS", nil),
			TopicTurns:     envOrDefault("KAFKA_TOPIC_TURNS", "interview.turns"),
			TopicSentiment: envOrDefault("KAFKA_TOPIC_SENTIMENT", "interview.sentiment"),
			Principal:      envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsAddr: os.Getenv("METRICS_ADDR"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
