package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ai-interview-service/internal/observability/logging"
)

// listFiles returns the sorted files in dir whose extension is in exts.
func listFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// StillCamera serves image files from a directory in name order, cycling
// back to the first when it runs out.
type StillCamera struct {
	mu     sync.Mutex
	files  []string
	next   int
	closed bool
	logger zerolog.Logger
}

var _ Camera = (*StillCamera)(nil)

// OpenStillCamera opens a camera over the .jpg, .jpeg and .png files in dir.
func OpenStillCamera(dir string) (*StillCamera, error) {
	files, err := listFiles(dir, ".jpg", ".jpeg", ".png")
	if err != nil {
		return nil, fmt.Errorf("%w: camera %s: %v", ErrDeviceUnavailable, dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: camera %s: no image files", ErrDeviceUnavailable, dir)
	}
	return &StillCamera{
		files:  files,
		logger: logging.WithProvider("camera", "still"),
	}, nil
}

// ReadFrame returns the next image.
func (c *StillCamera) ReadFrame(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Frame{}, fmt.Errorf("%w: camera closed", ErrDeviceUnavailable)
	}
	path := c.files[c.next%len(c.files)]
	c.next++
	c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return Frame{}, fmt.Errorf("read frame %s: %w", filepath.Base(path), err)
	}

	format := "jpeg"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		format = "png"
	}
	c.logger.Debug().Str("file", filepath.Base(path)).Int("bytes", len(data)).Msg("Frame captured")
	return Frame{Data: data, Format: format, CapturedAt: time.Now()}, nil
}

// Close releases the camera. It is idempotent.
func (c *StillCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// ReplayMicrophone plays back .wav recordings from a directory in name
// order, one per Listen. A recording with no samples, or running out of
// recordings, is reported as ErrListenTimeout once the onset timeout
// elapses. Recordings longer than the phrase limit are truncated.
type ReplayMicrophone struct {
	mu     sync.Mutex
	files  []string
	next   int
	closed bool
	// wait is the simulated onset delay; nil waits the full onset timeout.
	wait   func(ctx context.Context, d time.Duration) error
	logger zerolog.Logger
}

var _ Microphone = (*ReplayMicrophone)(nil)

// OpenReplayMicrophone opens a microphone over the .wav files in dir.
func OpenReplayMicrophone(dir string) (*ReplayMicrophone, error) {
	files, err := listFiles(dir, ".wav")
	if err != nil {
		return nil, fmt.Errorf("%w: microphone %s: %v", ErrDeviceUnavailable, dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: microphone %s: no wav files", ErrDeviceUnavailable, dir)
	}
	return &ReplayMicrophone{
		files:  files,
		wait:   sleepCtx,
		logger: logging.WithProvider("microphone", "replay"),
	}, nil
}

// Listen returns the next recording.
func (m *ReplayMicrophone) Listen(ctx context.Context, opts ListenOptions) (*Utterance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: microphone closed", ErrDeviceUnavailable)
	}
	if m.next >= len(m.files) {
		m.mu.Unlock()
		return nil, m.timeout(ctx, opts)
	}
	path := m.files[m.next]
	m.next++
	m.mu.Unlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read utterance %s: %w", filepath.Base(path), err)
	}
	format, pcm, err := DecodeWAV(raw)
	if err != nil {
		return nil, fmt.Errorf("decode utterance %s: %w", filepath.Base(path), err)
	}
	if len(pcm) == 0 {
		return nil, m.timeout(ctx, opts)
	}

	if opts.PhraseLimit > 0 {
		limit := int(opts.PhraseLimit.Seconds() * float64(format.ByteRate()))
		if align := format.Channels * format.BitsPerSample / 8; align > 0 {
			limit -= limit % align
		}
		if len(pcm) > limit {
			m.logger.Debug().Str("file", filepath.Base(path)).Dur("phraseLimit", opts.PhraseLimit).Msg("Utterance truncated at phrase limit")
			pcm = pcm[:limit]
		}
	}

	u := &Utterance{
		Audio:    EncodeWAV(pcm, format),
		Format:   format,
		Duration: format.Duration(len(pcm)),
	}
	m.logger.Debug().Str("file", filepath.Base(path)).Dur("duration", u.Duration).Msg("Utterance recorded")
	return u, nil
}

func (m *ReplayMicrophone) timeout(ctx context.Context, opts ListenOptions) error {
	if err := m.wait(ctx, opts.OnsetTimeout); err != nil {
		return err
	}
	return ErrListenTimeout
}

// Close releases the microphone. It is idempotent.
func (m *ReplayMicrophone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
