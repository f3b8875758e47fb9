// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_interview"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Session metrics
	SessionsTotal   prometheus.Counter
	SessionsActive  prometheus.Gauge
	SessionsClosed  *prometheus.CounterVec
	SessionDuration prometheus.Histogram

	// Turn metrics
	TurnsTotal   *prometheus.CounterVec
	RetriesTotal *prometheus.CounterVec

	// Sentiment metrics
	FusedScore      prometheus.Histogram
	SentimentLabels *prometheus.CounterVec

	// Capture metrics
	FrameCaptureFailures prometheus.Counter
	ListenTimeouts       prometheus.Counter

	// LLM metrics
	LLMLatency *prometheus.HistogramVec
	LLMErrors  *prometheus.CounterVec

	// STT metrics
	STTLatency *prometheus.HistogramVec
	STTErrors  *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Session metrics
		SessionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of interview sessions started",
		}),
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of interview sessions currently running",
		}),
		SessionsClosed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_closed_total",
			Help:      "Total number of interview sessions closed, by reason",
		}, []string{"reason"}),
		SessionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Duration of interview sessions in seconds",
			Buckets:   []float64{30, 60, 120, 300, 600, 900, 1800, 3600},
		}),

		// Turn metrics
		TurnsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Total number of turns appended to conversation history",
		}, []string{"role"}),
		RetriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Total number of reprompts issued to the candidate",
		}, []string{"reason"}),

		// Sentiment metrics
		FusedScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fused_sentiment_score",
			Help:      "Distribution of fused sentiment scores",
			Buckets:   prometheus.LinearBuckets(-1, 0.25, 9),
		}),
		SentimentLabels: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiment_labels_total",
			Help:      "Total number of candidate turns by sentiment label",
		}, []string{"label"}),

		// Capture metrics
		FrameCaptureFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_capture_failures_total",
			Help:      "Total number of turns where no camera frame could be read",
		}),
		ListenTimeouts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listen_timeouts_total",
			Help:      "Total number of listen attempts that heard no speech",
		}),

		// LLM metrics
		LLMLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_latency_seconds",
			Help:      "Question generation latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"provider"}),
		LLMErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_errors_total",
			Help:      "Total number of question generation failures",
		}, []string{"provider", "error_type"}),

		// STT metrics
		STTLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stt_latency_seconds",
			Help:      "Speech-to-text processing latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"provider"}),
		STTErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stt_errors_total",
			Help:      "Total number of STT errors",
		}, []string{"provider", "error_type"}),

		// Kafka publish metrics
		KafkaPublishTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordSessionStart records a new interview session starting.
func (m *Metrics) RecordSessionStart() {
	m.SessionsTotal.Inc()
	m.SessionsActive.Inc()
}

// RecordSessionEnd records an interview session closing.
func (m *Metrics) RecordSessionEnd(reason string, durationSeconds float64) {
	m.SessionsActive.Dec()
	m.SessionsClosed.WithLabelValues(reason).Inc()
	m.SessionDuration.Observe(durationSeconds)
}

// RecordTurn records a turn appended to the history.
func (m *Metrics) RecordTurn(role string) {
	m.TurnsTotal.WithLabelValues(role).Inc()
}

// RecordRetry records a reprompt back-edge.
func (m *Metrics) RecordRetry(reason string) {
	m.RetriesTotal.WithLabelValues(reason).Inc()
}

// RecordSentiment records a fused score and its label.
func (m *Metrics) RecordSentiment(score float64, label string) {
	m.FusedScore.Observe(score)
	m.SentimentLabels.WithLabelValues(label).Inc()
}

// RecordFrameCaptureFailure records a turn without a usable camera frame.
func (m *Metrics) RecordFrameCaptureFailure() {
	m.FrameCaptureFailures.Inc()
}

// RecordListenTimeout records a listen attempt that heard nothing.
func (m *Metrics) RecordListenTimeout() {
	m.ListenTimeouts.Inc()
}

// RecordLLMCall records a question generation attempt.
// errorType is empty on success.
func (m *Metrics) RecordLLMCall(provider, errorType string, latencySeconds float64) {
	m.LLMLatency.WithLabelValues(provider).Observe(latencySeconds)
	if errorType != "" {
		m.LLMErrors.WithLabelValues(provider, errorType).Inc()
	}
}

// RecordSTTLatency records the duration of a transcription call.
func (m *Metrics) RecordSTTLatency(provider string, latencySeconds float64) {
	m.STTLatency.WithLabelValues(provider).Observe(latencySeconds)
}

// RecordSTTError records an STT error.
func (m *Metrics) RecordSTTError(provider, errorType string) {
	m.STTErrors.WithLabelValues(provider, errorType).Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
