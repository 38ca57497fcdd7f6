package catalog

import "fmt"

// Status represents the lifecycle of a catalog item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInFlight  Status = "in-flight"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Failure is the user-facing category recorded on a failed item.
type Failure string

const (
	FailureQuotaExceeded Failure = "Quota Exceeded"
	FailureInvalidAPIKey Failure = "Invalid API Key"
	FailureUpload        Failure = "CDN Upload Failed"
	FailureGeneration    Failure = "Image Generation Failed"
)

// InputCategory is one element of the uploaded input document. A non-empty
// URL marks the item as already processed.
type InputCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// OutputCategory is one element of the exported result document.
type OutputCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Item is the unit of work: one per input category.
type Item struct {
	ID     int
	Name   string
	Prompt string
	URL    string
	Status Status
	Error  Failure
}

// Terminal reports whether the item has reached a final state.
func (i Item) Terminal() bool {
	return i.Status == StatusSucceeded || i.Status == StatusFailed
}

// DefaultPrompt builds the templated generation prompt for a category name.
func DefaultPrompt(name string) string {
	return fmt.Sprintf("A simple, artistic, high-quality, professional product photograph "+
		"representing the concept of '%s'. The background should be a clean, solid light "+
		"gray (#f3f4f6). No text or logos.", name)
}
