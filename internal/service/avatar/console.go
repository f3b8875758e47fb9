package avatar

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ai-interview-service/internal/models"
	"ai-interview-service/internal/observability/logging"
)

// Console prints interviewer lines to a writer and logs the avatar image
// for each expression. With a non-zero WordDelay it also paces output to
// approximate spoken playback.
type Console struct {
	out       io.Writer
	set       *Set
	name      string
	wordDelay time.Duration

	mu      sync.Mutex
	current string

	logger zerolog.Logger
}

var (
	_ Speaker = (*Console)(nil)
	_ Display = (*Console)(nil)
)

// NewConsole creates a console presenter for the named interviewer.
func NewConsole(out io.Writer, set *Set, name string, wordDelay time.Duration) *Console {
	if name == "" {
		name = "Interviewer"
	}
	return &Console{
		out:       out,
		set:       set,
		name:      name,
		wordDelay: wordDelay,
		logger:    logging.WithComponent("avatar"),
	}
}

// Speak shows emotion, prints the line, waits for simulated playback and
// reverts to neutral.
func (c *Console) Speak(ctx context.Context, text string, emotion models.AvatarEmotion) error {
	c.Show(emotion)

	if _, err := fmt.Fprintf(c.out, "%s [%s]: %s\n", c.name, emotion, text); err != nil {
		return fmt.Errorf("write line: %w", err)
	}

	if c.wordDelay > 0 {
		d := time.Duration(len(strings.Fields(text))) * c.wordDelay
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	c.Show(models.AvatarNeutral)
	return nil
}

// Show switches the displayed avatar image.
func (c *Console) Show(emotion models.AvatarEmotion) {
	path, ok := c.set.Resolve(emotion)

	c.mu.Lock()
	changed := c.current != path
	c.current = path
	c.mu.Unlock()

	if !ok {
		c.logger.Warn().Str("emotion", string(emotion)).Str("asset", path).Msg("Avatar image missing")
		return
	}
	if changed {
		c.logger.Debug().Str("emotion", string(emotion)).Str("asset", path).Msg("Avatar image shown")
	}
}

// Current returns the path of the image last shown.
func (c *Console) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
