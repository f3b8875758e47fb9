package fusion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights are the linear coefficients applied to each modality score.
type Weights struct {
	Face  float64 `yaml:"face"`
	Voice float64 `yaml:"voice"`
	Text  float64 `yaml:"text"`
}

// Profile is the full, fixed parameter set of the fuser.
type Profile struct {
	EmotionScores      map[string]float64 `yaml:"emotion_scores"`
	Weights            Weights            `yaml:"weights"`
	BaselinePitchHz    float64            `yaml:"baseline_pitch_hz"`
	FillerRatioCeiling float64            `yaml:"filler_ratio_ceiling"`
}

// DefaultProfile returns the standard scoring tables.
func DefaultProfile() Profile {
	return Profile{
		EmotionScores: map[string]float64{
			"happy":    0.8,
			"surprise": 0.5,
			"neutral":  0.1,
			"sad":      -0.6,
			"angry":    -0.7,
			"fear":     -0.8,
			"disgust":  -0.9,
		},
		Weights:            Weights{Face: 0.5, Voice: 0.2, Text: 0.3},
		BaselinePitchHz:    150,
		FillerRatioCeiling: 0.15,
	}
}

// profileFile mirrors Profile with optional fields so a partial YAML file
// only overrides what it names.
type profileFile struct {
	EmotionScores      map[string]float64 `yaml:"emotion_scores"`
	Weights            weightsFile        `yaml:"weights"`
	BaselinePitchHz    *float64           `yaml:"baseline_pitch_hz"`
	FillerRatioCeiling *float64           `yaml:"filler_ratio_ceiling"`
}

type weightsFile struct {
	Face  *float64 `yaml:"face"`
	Voice *float64 `yaml:"voice"`
	Text  *float64 `yaml:"text"`
}

// LoadProfile reads a YAML profile from path on top of DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read fusion profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML profile on top of DefaultProfile.
func ParseProfile(data []byte) (Profile, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return Profile{}, fmt.Errorf("decode fusion profile: %w", err)
	}

	p := DefaultProfile()
	for k, v := range pf.EmotionScores {
		p.EmotionScores[k] = v
	}
	if pf.Weights.Face != nil {
		p.Weights.Face = *pf.Weights.Face
	}
	if pf.Weights.Voice != nil {
		p.Weights.Voice = *pf.Weights.Voice
	}
	if pf.Weights.Text != nil {
		p.Weights.Text = *pf.Weights.Text
	}
	if pf.BaselinePitchHz != nil {
		p.BaselinePitchHz = *pf.BaselinePitchHz
	}
	if pf.FillerRatioCeiling != nil {
		p.FillerRatioCeiling = *pf.FillerRatioCeiling
	}

	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) validate() error {
	if p.BaselinePitchHz <= 0 {
		return fmt.Errorf("fusion profile: baseline_pitch_hz must be positive, got %v", p.BaselinePitchHz)
	}
	if p.FillerRatioCeiling <= 0 {
		return fmt.Errorf("fusion profile: filler_ratio_ceiling must be positive, got %v", p.FillerRatioCeiling)
	}
	return nil
}

func (p Profile) clone() Profile {
	scores := make(map[string]float64, len(p.EmotionScores))
	for k, v := range p.EmotionScores {
		scores[k] = v
	}
	p.EmotionScores = scores
	return p
}
