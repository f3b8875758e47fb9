// Package avatar presents the interviewer: it resolves the avatar image for
// an emotion and speaks lines to the candidate.
package avatar

import (
	"context"
	"os"
	"path/filepath"

	"ai-interview-service/internal/models"
)

// Speaker says one line to the candidate. Speak blocks until playback is
// complete.
type Speaker interface {
	Speak(ctx context.Context, text string, emotion models.AvatarEmotion) error
}

// Display shows the avatar in a given expression without speaking.
type Display interface {
	Show(emotion models.AvatarEmotion)
}

// Set maps avatar emotions to image files under a directory.
type Set struct {
	dir string
}

// NewSet creates an image set rooted at dir.
func NewSet(dir string) *Set {
	return &Set{dir: dir}
}

// Path returns the image path for emotion without checking it exists.
func (s *Set) Path(emotion models.AvatarEmotion) string {
	return filepath.Join(s.dir, string(emotion)+".png")
}

// Resolve returns the image for emotion, falling back to the neutral image
// when it is missing. ok is false if the neutral image is missing too.
func (s *Set) Resolve(emotion models.AvatarEmotion) (path string, ok bool) {
	if emotion != "" {
		p := s.Path(emotion)
		if fileExists(p) {
			return p, true
		}
	}
	p := s.Path(models.AvatarNeutral)
	return p, fileExists(p)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
