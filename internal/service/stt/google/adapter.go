// Package google provides a Google Cloud Speech-to-Text adapter.
package google

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/status"

	"ai-interview-service/internal/service/stt"
)

// Config holds recognition settings.
type Config struct {
	LanguageCode  string
	SampleRateHz  int
	AudioEncoding string
}

// DefaultConfig returns settings for 16kHz LINEAR16 English audio.
func DefaultConfig() Config {
	return Config{
		LanguageCode:  "en-US",
		SampleRateHz:  16000,
		AudioEncoding: "LINEAR16",
	}
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// Adapter implements stt.Transcriber using Google Cloud Speech-to-Text.
type Adapter struct {
	client    *speech.Client
	recognize recognizeFunc
	cfg       Config
}

// Compile-time interface check.
var _ stt.Transcriber = (*Adapter)(nil)

// New creates a new Google STT adapter.
// Requires GOOGLE_APPLICATION_CREDENTIALS environment variable to be set.
func New(ctx context.Context, cfg Config) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	a := newWithRecognizer(func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return c.Recognize(ctx, req)
	}, cfg)
	a.client = c
	return a, nil
}

func newWithRecognizer(fn recognizeFunc, cfg Config) *Adapter {
	return &Adapter{recognize: fn, cfg: cfg}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string { return "google" }

// Transcribe runs synchronous recognition on one utterance.
func (a *Adapter) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", stt.ErrUnintelligible
	}

	resp, err := a.recognize(ctx, a.request(wav))
	if err != nil {
		return "", fmt.Errorf("google recognize (%s): %w", status.Code(err), err)
	}

	var parts []string
	for _, r := range resp.GetResults() {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return "", stt.ErrUnintelligible
	}
	return strings.Join(parts, " "), nil
}

// Close closes the underlying client.
func (a *Adapter) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func (a *Adapter) request(wav []byte) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        parseAudioEncoding(a.cfg.AudioEncoding),
			SampleRateHertz: int32(a.cfg.SampleRateHz),
			LanguageCode:    a.cfg.LanguageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: wav},
		},
	}
}

// parseAudioEncoding maps an encoding name to the proto enum, falling back
// to LINEAR16 for unknown or non-uppercase names.
func parseAudioEncoding(name string) speechpb.RecognitionConfig_AudioEncoding {
	if v, ok := speechpb.RecognitionConfig_AudioEncoding_value[name]; ok && name != "ENCODING_UNSPECIFIED" {
		return speechpb.RecognitionConfig_AudioEncoding(v)
	}
	return speechpb.RecognitionConfig_LINEAR16
}
