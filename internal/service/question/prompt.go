package question

import (
	"fmt"
	"strings"

	"ai-interview-service/internal/models"
)

// Sentiment labels fed to the model.
const (
	LabelConfident = "confident and positive"
	LabelNervous   = "nervous and hesitant"
	LabelNeutral   = "neutral"
)

const (
	confidentThreshold = 0.4
	nervousThreshold   = -0.3
)

// SentimentLabel maps a fused score to the coarse label used in the prompt.
// Both thresholds are strict.
func SentimentLabel(score float64) string {
	switch {
	case score > confidentThreshold:
		return LabelConfident
	case score < nervousThreshold:
		return LabelNervous
	default:
		return LabelNeutral
	}
}

// Persona describes who the interviewer is and what role is being filled.
type Persona struct {
	Name string
	Role string
}

// DefaultPersona returns the stock interviewer persona.
func DefaultPersona() Persona {
	return Persona{Name: "Gemini", Role: "Software Engineer"}
}

// BuildPrompt renders the single instruction sent to the model.
func BuildPrompt(p Persona, label string, history *models.History) string {
	allowed := make([]string, 0, len(models.AvatarEmotions))
	for _, e := range models.AvatarEmotions {
		allowed = append(allowed, "'"+string(e)+"'")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert, friendly, and encouraging HR interviewer named '%s'.\n", p.Name)
	fmt.Fprintf(&b, "Your goal is to assess a candidate for a '%s' role.\n", p.Role)
	fmt.Fprintf(&b, "The candidate's current emotional state is perceived as: %s.\n\n", label)
	b.WriteString("RULES:\n")
	b.WriteString("- If the candidate seems nervous, ask a simpler, rapport-building question.\n")
	b.WriteString("- If the candidate seems confident, ask a more challenging follow-up or a behavioral question.\n")
	b.WriteString("- Keep your questions concise and professional.\n")
	b.WriteString("- NEVER break character.\n")
	b.WriteString("- ALWAYS respond with a single JSON object with exactly two keys: \"question_text\" and \"suggested_avatar_emotion\".\n")
	fmt.Fprintf(&b, "- For \"suggested_avatar_emotion\", choose from: %s.\n\n", strings.Join(allowed, ", "))
	b.WriteString("Here is the conversation so far:\n")
	b.WriteString(history.Render())
	b.WriteString("\nBased on all the rules, the conversation, and the candidate's emotional state, generate the next single interview question.\n")
	return b.String()
}
