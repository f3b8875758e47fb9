package analysis

import (
	"strings"
	"unicode"

	"ai-interview-service/internal/models"
)

// DefaultFillers are the discourse fillers counted by default.
var DefaultFillers = []string{
	"uh", "um", "ah", "er", "like", "so", "you know",
	"basically", "actually", "i mean", "right",
}

// FillerCounter counts single- and two-word fillers in a transcript.
type FillerCounter struct {
	single map[string]bool
	pairs  map[string]bool
}

// NewFillerCounter builds a counter over the given fillers.
func NewFillerCounter(fillers []string) *FillerCounter {
	fc := &FillerCounter{single: map[string]bool{}, pairs: map[string]bool{}}
	for _, f := range fillers {
		words := strings.Fields(strings.ToLower(f))
		switch len(words) {
		case 1:
			fc.single[words[0]] = true
		case 2:
			fc.pairs[words[0]+" "+words[1]] = true
		}
	}
	return fc
}

// Count tokenizes text on whitespace, lowercases and strips surrounding
// punctuation from each word, then counts fillers. A two-word filler counts
// as one filler occurrence but both of its words stay in WordCount, so
// FillerRatio is occurrences per word: "you know" alone gives 1/2.
// FillerRatio is 0 for an empty transcript.
func (fc *FillerCounter) Count(text string) models.TextRecord {
	var words []string
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		w := strings.TrimFunc(raw, func(r rune) bool {
			return unicode.IsPunct(r) && r != '\''
		})
		if w != "" {
			words = append(words, w)
		}
	}

	fillers := 0
	for i := 0; i < len(words); i++ {
		if i+1 < len(words) && fc.pairs[words[i]+" "+words[i+1]] {
			fillers++
			i++
			continue
		}
		if fc.single[words[i]] {
			fillers++
		}
	}

	ratio := 0.0
	if len(words) > 0 {
		ratio = float64(fillers) / float64(len(words))
	}
	return models.TextRecord{
		WordCount:   len(words),
		FillerCount: fillers,
		FillerRatio: models.Float(ratio),
	}
}
