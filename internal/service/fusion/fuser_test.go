package fusion

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"ai-interview-service/internal/models"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestFuse_ConfidentCandidate(t *testing.T) {
	f := NewDefault()

	r := f.Fuse(
		models.EmotionRecord{DominantEmotion: models.EmotionHappy},
		models.VoiceRecord{AveragePitchHz: models.Float(150)},
		models.TextRecord{FillerRatio: models.Float(0)},
	)

	if !approxEqual(r.Score, 0.70) {
		t.Errorf("expected fused score 0.70, got %v", r.Score)
	}
	if !approxEqual(r.FaceScore, 0.8) || !approxEqual(r.VoiceScore, 0) || !approxEqual(r.TextScore, 1) {
		t.Errorf("unexpected components: %+v", r)
	}
}

func TestFuse_NervousCandidate(t *testing.T) {
	f := NewDefault()

	r := f.Fuse(
		models.EmotionRecord{DominantEmotion: models.EmotionDisgust},
		models.VoiceRecord{AveragePitchHz: models.Float(300)},
		models.TextRecord{FillerRatio: models.Float(0.3)},
	)

	if !approxEqual(r.VoiceScore, -1.0) {
		t.Errorf("expected voice score -1.0, got %v", r.VoiceScore)
	}
	if !approxEqual(r.TextScore, -1.0) {
		t.Errorf("expected text score -1.0, got %v", r.TextScore)
	}
	if !approxEqual(r.Score, -0.95) {
		t.Errorf("expected fused score -0.95, got %v", r.Score)
	}
}

func TestFuse_MissingInputsDegradeToNeutral(t *testing.T) {
	f := NewDefault()

	r := f.Fuse(models.EmotionRecord{}, models.VoiceRecord{}, models.TextRecord{})

	if !approxEqual(r.FaceScore, 0.1) {
		t.Errorf("missing emotion should score as neutral (0.1), got %v", r.FaceScore)
	}
	if !approxEqual(r.VoiceScore, 0) {
		t.Errorf("missing pitch should score 0, got %v", r.VoiceScore)
	}
	if !approxEqual(r.TextScore, 1) {
		t.Errorf("missing filler ratio should score 1, got %v", r.TextScore)
	}
	if !approxEqual(r.Score, 0.35) {
		t.Errorf("expected 0.05+0+0.3 = 0.35, got %v", r.Score)
	}
}

func TestFuse_UnknownEmotionScoresZero(t *testing.T) {
	f := NewDefault()

	r := f.Fuse(models.EmotionRecord{DominantEmotion: "contempt"}, models.VoiceRecord{}, models.TextRecord{})

	if r.FaceScore != 0 {
		t.Errorf("expected unknown emotion to score 0, got %v", r.FaceScore)
	}
}

func TestFuse_MeasuredZeroPitchIsNotMissing(t *testing.T) {
	f := NewDefault()

	r := f.Fuse(models.NeutralEmotion(), models.VoiceRecord{AveragePitchHz: models.Float(0)}, models.TextRecord{})

	if !approxEqual(r.VoiceScore, -1) {
		t.Errorf("expected 0 Hz to deviate fully from baseline, got %v", r.VoiceScore)
	}
}

func TestFuse_VoiceScoreIsNotClampedBeforeCombination(t *testing.T) {
	f := NewDefault()

	r := f.Fuse(models.NeutralEmotion(), models.VoiceRecord{AveragePitchHz: models.Float(600)}, models.TextRecord{})

	if !approxEqual(r.VoiceScore, -3) {
		t.Errorf("expected unclamped voice score -3, got %v", r.VoiceScore)
	}
	// 0.05 - 0.6 + 0.3
	if !approxEqual(r.Score, -0.25) {
		t.Errorf("expected fused score -0.25, got %v", r.Score)
	}
}

func TestFuse_AlwaysWithinRange(t *testing.T) {
	f := NewDefault()

	emotions := []models.Emotion{"", models.EmotionHappy, models.EmotionDisgust, "unknown"}
	pitches := []float64{0, 1, 150, 1e4, 1e12, math.Inf(1)}
	ratios := []float64{0, 0.15, 1, 5, 1e9}

	for _, e := range emotions {
		for _, p := range pitches {
			for _, fr := range ratios {
				r := f.Fuse(
					models.EmotionRecord{DominantEmotion: e},
					models.VoiceRecord{AveragePitchHz: models.Float(p)},
					models.TextRecord{FillerRatio: models.Float(fr)},
				)
				if r.Score < -1 || r.Score > 1 {
					t.Errorf("Fuse(%q, %v, %v) = %v, out of [-1, 1]", e, p, fr, r.Score)
				}
			}
		}
	}
}

func TestFuse_Deterministic(t *testing.T) {
	f := NewDefault()
	face := models.EmotionRecord{DominantEmotion: models.EmotionSad}
	voice := models.VoiceRecord{AveragePitchHz: models.Float(180)}
	text := models.TextRecord{FillerRatio: models.Float(0.05)}

	first := f.Fuse(face, voice, text)
	for i := 0; i < 10; i++ {
		if got := f.Fuse(face, voice, text); got != first {
			t.Fatalf("call %d returned %+v, want %+v", i, got, first)
		}
	}
}

func TestNew_CopiesProfile(t *testing.T) {
	p := DefaultProfile()
	f := New(p)

	p.EmotionScores["happy"] = -1

	r := f.Fuse(models.EmotionRecord{DominantEmotion: models.EmotionHappy}, models.VoiceRecord{}, models.TextRecord{})
	if !approxEqual(r.FaceScore, 0.8) {
		t.Errorf("fuser observed caller mutation: face score %v", r.FaceScore)
	}
}

func TestParseProfile_PartialOverride(t *testing.T) {
	data := []byte(`
emotion_scores:
  happy: 1.0
weights:
  face: 0.6
  voice: 0.1
  text: 0.3
`)

	p, err := ParseProfile(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.EmotionScores["happy"] != 1.0 {
		t.Errorf("expected happy override 1.0, got %v", p.EmotionScores["happy"])
	}
	if p.EmotionScores["sad"] != -0.6 {
		t.Errorf("expected sad default -0.6, got %v", p.EmotionScores["sad"])
	}
	if p.Weights.Face != 0.6 {
		t.Errorf("expected face weight 0.6, got %v", p.Weights.Face)
	}
	if p.BaselinePitchHz != 150 {
		t.Errorf("expected default baseline 150, got %v", p.BaselinePitchHz)
	}
}

func TestParseProfile_PartialWeights(t *testing.T) {
	p, err := ParseProfile([]byte("weights:\n  face: 0.6\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Weights{Face: 0.6, Voice: 0.2, Text: 0.3}
	if p.Weights != want {
		t.Fatalf("expected weights %+v, got %+v", want, p.Weights)
	}

	pitch := 150.0
	ratio := 0.0
	r := New(p).Fuse(
		models.EmotionRecord{DominantEmotion: models.EmotionHappy},
		models.VoiceRecord{AveragePitchHz: &pitch},
		models.TextRecord{FillerRatio: &ratio},
	)
	// 0.6*0.8 + 0.2*0 + 0.3*1
	if !approxEqual(r.Score, 0.78) {
		t.Errorf("expected fused score 0.78, got %v", r.Score)
	}
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "weights: [1, 2"},
		{"zero baseline", "baseline_pitch_hz: 0"},
		{"negative ceiling", "filler_ratio_ceiling: -0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseProfile([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fusion.yaml")
	if err := os.WriteFile(path, []byte("baseline_pitch_hz: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BaselinePitchHz != 200 {
		t.Errorf("expected baseline 200, got %v", p.BaselinePitchHz)
	}

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
