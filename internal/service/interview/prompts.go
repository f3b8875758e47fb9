package interview

import (
	"strings"

	"ai-interview-service/internal/models"
)

// Fixed interviewer lines.
const (
	GreetingPrompt       = "Hello and welcome to the interview. Let's start with an easy one. Can you tell me a little bit about yourself?"
	NoSpeechPrompt       = "I'm sorry, I didn't hear anything. Could you please answer the question?"
	UnintelligiblePrompt = "I'm sorry, I couldn't quite understand that. Could you please repeat yourself?"
	AnalysisErrorPrompt  = "I encountered a small issue. Let's try that again."
	ClosingPrompt        = "Thank you for your time. That concludes our interview. We will be in touch with you shortly. Goodbye."
)

// Why the session ended.
const (
	CloseCandidateExit    = "candidate_exit"
	CloseGenerationFailed = "generation_failed"
	CloseRetriesExhausted = "retries_exhausted"
	CloseDeviceError      = "device_error"
	CloseCancelled        = "cancelled"
)

// Retry reasons recorded in metrics.
const (
	retryListenTimeout  = "listen_timeout"
	retryUnintelligible = "unintelligible"
	retryAnalysisError  = "analysis_error"
)

var exitPhrases = []string{"goodbye", "end interview"}

// IsExitPhrase reports whether the candidate asked to end the interview.
// Matching is a case-insensitive substring test.
func IsExitPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range exitPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func line(text string, emotion models.AvatarEmotion) models.LLMResponse {
	return models.LLMResponse{QuestionText: text, SuggestedAvatarEmotion: emotion}
}
