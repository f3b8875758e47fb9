// Package fusion combines face, voice and text signals into a single
// sentiment score in [-1, 1].
package fusion

import (
	"math"

	"ai-interview-service/internal/models"
)

// Result is a fused score together with the per-modality contributions.
type Result struct {
	FaceScore  float64
	VoiceScore float64
	TextScore  float64
	Score      float64
}

// Fuser computes fused sentiment scores from a fixed profile.
// It holds no mutable state and is safe for concurrent use.
type Fuser struct {
	profile Profile
}

// New creates a fuser from a copy of p.
func New(p Profile) *Fuser {
	return &Fuser{profile: p.clone()}
}

// NewDefault creates a fuser with DefaultProfile.
func NewDefault() *Fuser {
	return New(DefaultProfile())
}

// Fuse scores one candidate turn. Missing inputs contribute neutrally:
// no emotion counts as "neutral", no pitch as the baseline pitch and no
// filler ratio as zero.
func (f *Fuser) Fuse(face models.EmotionRecord, voice models.VoiceRecord, text models.TextRecord) Result {
	r := Result{
		FaceScore:  f.faceScore(face),
		VoiceScore: f.voiceScore(voice),
		TextScore:  f.textScore(text),
	}
	w := f.profile.Weights
	r.Score = clamp(w.Face*r.FaceScore+w.Voice*r.VoiceScore+w.Text*r.TextScore, -1, 1)
	return r
}

func (f *Fuser) faceScore(rec models.EmotionRecord) float64 {
	emotion := rec.DominantEmotion
	if emotion == "" {
		emotion = models.EmotionNeutral
	}
	return f.profile.EmotionScores[string(emotion)]
}

// voiceScore penalizes deviation from the baseline pitch in either
// direction. It is intentionally not clamped.
func (f *Fuser) voiceScore(rec models.VoiceRecord) float64 {
	base := f.profile.BaselinePitchHz
	pitch := base
	if rec.AveragePitchHz != nil {
		pitch = *rec.AveragePitchHz
	}
	return -math.Abs(pitch-base) / base
}

func (f *Fuser) textScore(rec models.TextRecord) float64 {
	ratio := 0.0
	if rec.FillerRatio != nil {
		ratio = *rec.FillerRatio
	}
	return clamp(1-ratio/f.profile.FillerRatioCeiling, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
