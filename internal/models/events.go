package models

const (
	EventTurnInterviewer = "interview.turn.interviewer"
	EventTurnCandidate   = "interview.turn.candidate"
	EventSentiment       = "interview.sentiment.fused"
)

// TurnEvent is published for every turn appended to the history.
type TurnEvent struct {
	EventType string `json:"eventType"`
	SessionID string `json:"sessionId"`
	TurnID    string `json:"turnId"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// SentimentEvent carries the fused score computed for a candidate turn.
type SentimentEvent struct {
	EventType       string   `json:"eventType"`
	SessionID       string   `json:"sessionId"`
	TurnID          string   `json:"turnId"`
	DominantEmotion Emotion  `json:"dominantEmotion"`
	PitchHz         *float64 `json:"pitchHz,omitempty"`
	FillerRatio     *float64 `json:"fillerRatio,omitempty"`
	FaceScore       float64  `json:"faceScore"`
	VoiceScore      float64  `json:"voiceScore"`
	TextScore       float64  `json:"textScore"`
	Score           float64  `json:"score"`
	Label           string   `json:"label"`
	Timestamp       int64    `json:"timestamp"`
}

// EventForRole returns the turn event type for role.
func EventForRole(r Role) string {
	if r == RoleCandidate {
		return EventTurnCandidate
	}
	return EventTurnInterviewer
}
