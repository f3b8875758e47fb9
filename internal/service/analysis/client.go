package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/observability/logging"
	"ai-interview-service/internal/service/capture"
)

// Client talks to the face and voice analysis HTTP services.
type Client struct {
	c      *http.Client
	url    string
	logger zerolog.Logger
}

// NewClient creates a client for the analyzer service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		c:      &http.Client{Timeout: timeout},
		url:    strings.TrimRight(baseURL, "/"),
		logger: logging.WithComponent("analyzer"),
	}
}

type faceResp struct {
	FaceDetected    *bool          `json:"face_detected"`
	DominantEmotion string         `json:"dominant_emotion"`
	Region          *models.Region `json:"region"`
}

type voiceResp struct {
	AveragePitchHz *float64 `json:"average_pitch_hz"`
	Energy         float64  `json:"energy"`
}

// FaceClient adapts Client to FaceAnalyzer.
type FaceClient struct{ *Client }

// VoiceClient adapts Client to VoiceAnalyzer. A reported pitch of 0 Hz
// means no voiced speech and is returned as a missing pitch.
type VoiceClient struct{ *Client }

var (
	_ FaceAnalyzer  = FaceClient{}
	_ VoiceAnalyzer = VoiceClient{}
)

// AnalyzeFace posts the frame to {url}/analyze-face.
func (f FaceClient) AnalyzeFace(ctx context.Context, frame capture.Frame) (models.EmotionRecord, error) {
	name := "frame.jpg"
	if frame.Format == "png" {
		name = "frame.png"
	}

	var out faceResp
	if err := f.post(ctx, "/analyze-face", name, bytes.NewReader(frame.Data), &out); err != nil {
		return models.EmotionRecord{}, fmt.Errorf("face analysis: %w", err)
	}

	if (out.FaceDetected != nil && !*out.FaceDetected) || out.DominantEmotion == "" {
		f.logger.Debug().Msg("No face detected, using neutral record")
		return models.NeutralEmotion(), nil
	}
	return models.EmotionRecord{
		DominantEmotion: models.Emotion(strings.ToLower(out.DominantEmotion)),
		Region:          out.Region,
	}, nil
}

// AnalyzeVoice posts the WAV file to {url}/analyze-voice. A reported pitch
// of zero means no confident pitch and is returned as missing.
func (v VoiceClient) AnalyzeVoice(ctx context.Context, wavPath string) (models.VoiceRecord, error) {
	fd, err := os.Open(wavPath)
	if err != nil {
		return models.VoiceRecord{}, fmt.Errorf("voice analysis: %w", err)
	}
	defer fd.Close()

	var out voiceResp
	if err := v.post(ctx, "/analyze-voice", filepath.Base(wavPath), fd, &out); err != nil {
		return models.VoiceRecord{}, fmt.Errorf("voice analysis: %w", err)
	}

	rec := models.VoiceRecord{Energy: out.Energy}
	if out.AveragePitchHz != nil && *out.AveragePitchHz > 0 {
		rec.AveragePitchHz = out.AveragePitchHz
	}
	return rec, nil
}

func (c *Client) post(ctx context.Context, path, filename string, body io.Reader, out any) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err = io.Copy(fw, body); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	start := time.Now()
	resp, err := c.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Analyzer responded")

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s decode: %w", path, err)
	}
	return nil
}
