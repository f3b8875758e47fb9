package config

import (
	"os"
	"testing"
	"time"
)

var allEnvVars = []string{
	"SERVICE_PRINCIPAL", "LOG_LEVEL", "LOG_FORMAT", "METRICS_ADDR",
	"INTERVIEW_ROLE", "INTERVIEWER_NAME",
	"LISTEN_ONSET_TIMEOUT", "LISTEN_PHRASE_LIMIT", "MAX_CONSECUTIVE_RETRIES",
	"FRAME_CAPTURE_ATTEMPTS", "FRAME_RETRY_DELAY", "OUTPUT_DIR", "FUSION_PROFILE",
	"CAMERA_SOURCE", "MIC_SOURCE", "AVATAR_DIR",
	"FACE_ANALYZER_URL", "VOICE_ANALYZER_URL", "ANALYZER_TIMEOUT",
	"LLM_PROVIDER", "LLM_MODEL", "GOOGLE_API_KEY",
	"STT_PROVIDER", "STT_LANGUAGE_CODE", "STT_SAMPLE_RATE_HZ", "STT_AUDIO_ENCODING",
	"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_TOPIC_TURNS", "KAFKA_TOPIC_SENTIMENT", "KAFKA_PRINCIPAL",
}

func clearEnv() {
	for _, v := range allEnvVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv()

	cfg := Load()

	if cfg.Kafka.Principal != "svc-ai-interviewer" {
		t.Errorf("expected default principal 'svc-ai-interviewer', got %s", cfg.Kafka.Principal)
	}

	// Interview defaults
	if cfg.Interview.Role != "Software Engineer" {
		t.Errorf("expected default role 'Software Engineer', got %s", cfg.Interview.Role)
	}
	if cfg.Interview.OnsetTimeout != 10*time.Second {
		t.Errorf("expected default onset timeout 10s, got %v", cfg.Interview.OnsetTimeout)
	}
	if cfg.Interview.PhraseLimit != 30*time.Second {
		t.Errorf("expected default phrase limit 30s, got %v", cfg.Interview.PhraseLimit)
	}
	if cfg.Interview.MaxConsecutiveRetries != 3 {
		t.Errorf("expected default max retries 3, got %d", cfg.Interview.MaxConsecutiveRetries)
	}
	if cfg.Interview.FrameCaptureAttempts != 3 {
		t.Errorf("expected default frame attempts 3, got %d", cfg.Interview.FrameCaptureAttempts)
	}
	if cfg.Interview.FrameRetryDelay != 100*time.Millisecond {
		t.Errorf("expected default frame retry delay 100ms, got %v", cfg.Interview.FrameRetryDelay)
	}
	if cfg.Interview.OutputDir != "" {
		t.Errorf("expected empty output dir, got %s", cfg.Interview.OutputDir)
	}

	// Collaborator defaults
	if cfg.LLM.Provider != "mock" {
		t.Errorf("expected default LLM provider 'mock', got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("expected default model 'gemini-2.5-flash', got %s", cfg.LLM.Model)
	}
	if cfg.STT.Provider != "mock" {
		t.Errorf("expected default STT provider 'mock', got %s", cfg.STT.Provider)
	}
	if cfg.STT.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.STT.AudioEncoding != "LINEAR16" {
		t.Errorf("expected default encoding 'LINEAR16', got %s", cfg.STT.AudioEncoding)
	}
	if cfg.Analyzers.FaceURL != "" || cfg.Analyzers.VoiceURL != "" {
		t.Errorf("expected analyzer URLs unset, got face=%q voice=%q", cfg.Analyzers.FaceURL, cfg.Analyzers.VoiceURL)
	}
	if cfg.Devices.AvatarDir != "avatar_images" {
		t.Errorf("expected default avatar dir 'avatar_images', got %s", cfg.Devices.AvatarDir)
	}

	// Kafka defaults
	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled by default")
	}
	if cfg.Kafka.TopicTurns != "interview.turns" {
		t.Errorf("expected default turns topic, got %s", cfg.Kafka.TopicTurns)
	}
	if cfg.Kafka.TopicSentiment != "interview.sentiment" {
		t.Errorf("expected default sentiment topic, got %s", cfg.Kafka.TopicSentiment)
	}

	// Observability defaults
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != "json" {
		t.Errorf("expected default log format 'json', got %s", cfg.Observability.LogFormat)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv()
	os.Setenv("SERVICE_PRINCIPAL", "custom-principal")
	os.Setenv("INTERVIEW_ROLE", "Data Scientist")
	os.Setenv("LISTEN_ONSET_TIMEOUT", "5s")
	os.Setenv("LISTEN_PHRASE_LIMIT", "1m")
	os.Setenv("MAX_CONSECUTIVE_RETRIES", "5")
	os.Setenv("FRAME_RETRY_DELAY", "250ms")
	os.Setenv("LLM_PROVIDER", "gemini")
	os.Setenv("STT_PROVIDER", "google")
	os.Setenv("STT_SAMPLE_RATE_HZ", "8000")
	os.Setenv("KAFKA_ENABLED", "true")
	os.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	os.Setenv("LOG_LEVEL", "debug")
	defer clearEnv()

	cfg := Load()

	if cfg.Kafka.Principal != "custom-principal" {
		t.Errorf("expected principal 'custom-principal', got %s", cfg.Kafka.Principal)
	}
	if cfg.Interview.Role != "Data Scientist" {
		t.Errorf("expected role 'Data Scientist', got %s", cfg.Interview.Role)
	}
	if cfg.Interview.OnsetTimeout != 5*time.Second {
		t.Errorf("expected onset timeout 5s, got %v", cfg.Interview.OnsetTimeout)
	}
	if cfg.Interview.PhraseLimit != time.Minute {
		t.Errorf("expected phrase limit 1m, got %v", cfg.Interview.PhraseLimit)
	}
	if cfg.Interview.MaxConsecutiveRetries != 5 {
		t.Errorf("expected max retries 5, got %d", cfg.Interview.MaxConsecutiveRetries)
	}
	if cfg.Interview.FrameRetryDelay != 250*time.Millisecond {
		t.Errorf("expected frame retry delay 250ms, got %v", cfg.Interview.FrameRetryDelay)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("expected LLM provider 'gemini', got %s", cfg.LLM.Provider)
	}
	if cfg.STT.Provider != "google" {
		t.Errorf("expected STT provider 'google', got %s", cfg.STT.Provider)
	}
	if cfg.STT.SampleRateHz != 8000 {
		t.Errorf("expected sample rate 8000, got %d", cfg.STT.SampleRateHz)
	}
	if !cfg.Kafka.Enabled {
		t.Error("expected Kafka enabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("expected two trimmed brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_InvalidValues_FallbackToDefaults(t *testing.T) {
	clearEnv()
	os.Setenv("LISTEN_ONSET_TIMEOUT", "soon")
	os.Setenv("MAX_CONSECUTIVE_RETRIES", "many")
	os.Setenv("STT_SAMPLE_RATE_HZ", "not-a-number")
	os.Setenv("KAFKA_ENABLED", "invalid")
	os.Setenv("KAFKA_BROKERS", " , ")
	defer clearEnv()

	cfg := Load()

	if cfg.Interview.OnsetTimeout != 10*time.Second {
		t.Errorf("expected default onset timeout on invalid input, got %v", cfg.Interview.OnsetTimeout)
	}
	if cfg.Interview.MaxConsecutiveRetries != 3 {
		t.Errorf("expected default max retries on invalid input, got %d", cfg.Interview.MaxConsecutiveRetries)
	}
	if cfg.STT.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate on invalid input, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.Kafka.Enabled {
		t.Error("expected default Kafka enabled=false on invalid input")
	}
	if cfg.Kafka.Brokers != nil {
		t.Errorf("expected nil brokers for blank list, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_KafkaPrincipal_FallsBackToServicePrincipal(t *testing.T) {
	clearEnv()
	os.Setenv("SERVICE_PRINCIPAL", "my-service")
	defer clearEnv()

	cfg := Load()

	if cfg.Kafka.Principal != "my-service" {
		t.Errorf("expected Kafka principal to fall back to service principal, got %s", cfg.Kafka.Principal)
	}
}

func TestEnvOrDefaultBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      bool
		expected bool
	}{
		{"true string", "true", false, true},
		{"false string", "false", true, false},
		{"1", "1", false, true},
		{"0", "0", true, false},
		{"TRUE uppercase", "TRUE", false, true},
		{"invalid", "invalid", true, true},
		{"empty", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VAR"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}
			defer os.Unsetenv(key)

			got := envOrDefaultBool(key, tt.def)
			if got != tt.expected {
				t.Errorf("envOrDefaultBool(%s, %v) = %v, want %v", tt.envValue, tt.def, got, tt.expected)
			}
		})
	}
}
