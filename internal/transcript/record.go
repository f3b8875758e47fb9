// Package transcript persists the outcome of an interview session as a JSON
// record on disk.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ai-interview-service/internal/models"
)

// Record is the on-disk form of one finished session.
type Record struct {
	SessionID   string                  `json:"session_id"`
	StartedAt   time.Time               `json:"started_at"`
	EndedAt     time.Time               `json:"ended_at"`
	CloseReason string                  `json:"close_reason"`
	Turns       []models.TurnEvent      `json:"turns"`
	Sentiment   []models.SentimentEvent `json:"sentiment"`
}

// Writer stores records under a directory, one file per session.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir. The directory is created on
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the file a session's record is written to.
func (w *Writer) Path(sessionID string) string {
	return filepath.Join(w.dir, sessionID+".json")
}

// Write stores rec atomically and returns its path.
func (w *Writer) Write(rec Record) (string, error) {
	if rec.SessionID == "" {
		return "", errors.New("transcript: record has no session id")
	}
	if rec.Turns == nil {
		rec.Turns = []models.TurnEvent{}
	}
	if rec.Sentiment == nil {
		rec.Sentiment = []models.SentimentEvent{}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	data = append(data, '\n')

	path := w.Path(rec.SessionID)
	if err := atomicWrite(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a record written by Write.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// atomicWrite writes data to a temp file in the target directory and
// renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing record: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing record: %w", err)
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming record into place: %w", err)
	}
	return nil
}
