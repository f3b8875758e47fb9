package models

// AvatarEmotion is the expression the interviewer avatar shows while speaking.
type AvatarEmotion string

const (
	AvatarNeutral        AvatarEmotion = "neutral"
	AvatarSmiling        AvatarEmotion = "smiling"
	AvatarEncouragingNod AvatarEmotion = "encouraging_nod"
	AvatarThinking       AvatarEmotion = "thinking"
)

// AvatarEmotions lists every expression the model may suggest.
var AvatarEmotions = []AvatarEmotion{
	AvatarNeutral,
	AvatarSmiling,
	AvatarEncouragingNod,
	AvatarThinking,
}

// Valid reports whether e is one of the allowed avatar expressions.
func (e AvatarEmotion) Valid() bool {
	for _, allowed := range AvatarEmotions {
		if e == allowed {
			return true
		}
	}
	return false
}

// LLMResponse is the next interviewer line and the avatar expression to show.
type LLMResponse struct {
	QuestionText           string        `json:"question_text"`
	SuggestedAvatarEmotion AvatarEmotion `json:"suggested_avatar_emotion"`
}
