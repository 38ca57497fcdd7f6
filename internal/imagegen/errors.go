package imagegen

import (
	"strings"

	"catalogpix/internal/catalog"
)

// Classify maps a raw generation error onto the closed set of user-facing
// failure categories. The Gemini API signals quota exhaustion as
// RESOURCE_EXHAUSTED or HTTP 429, and an unknown API key as "Requested
// entity was not found".
func Classify(err error) catalog.Failure {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429"):
		return catalog.FailureQuotaExceeded
	case strings.Contains(msg, "Requested entity was not found"):
		return catalog.FailureInvalidAPIKey
	default:
		return catalog.FailureGeneration
	}
}
