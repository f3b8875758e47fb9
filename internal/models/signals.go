// Package models defines the records exchanged between the interview loop,
// the signal extractors and the event publisher.
package models

// Emotion is a facial expression label produced by the face analyzer.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSurprise Emotion = "surprise"
	EmotionNeutral  Emotion = "neutral"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionFear     Emotion = "fear"
	EmotionDisgust  Emotion = "disgust"
)

// Region is the bounding box of the detected face in frame pixels.
type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// EmotionRecord is the face analyzer result for one candidate turn.
// An empty DominantEmotion means the analyzer did not report one.
type EmotionRecord struct {
	DominantEmotion Emotion `json:"dominant_emotion"`
	Region          *Region `json:"region,omitempty"`
}

// NeutralEmotion is the record used when no face could be analyzed.
func NeutralEmotion() EmotionRecord {
	return EmotionRecord{DominantEmotion: EmotionNeutral}
}

// VoiceRecord is the prosody of one recorded utterance.
// AveragePitchHz is nil when the analyzer did not report a pitch.
type VoiceRecord struct {
	AveragePitchHz *float64 `json:"average_pitch_hz,omitempty"`
	Energy         float64  `json:"energy"`
}

// TextRecord holds filler-word statistics for one transcript.
// FillerRatio is nil when the ratio is unknown.
type TextRecord struct {
	WordCount   int      `json:"word_count"`
	FillerCount int      `json:"filler_count"`
	FillerRatio *float64 `json:"filler_ratio,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
