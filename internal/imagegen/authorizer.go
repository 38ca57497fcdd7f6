package imagegen

import (
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// Authorizer answers whether an API authorization has been selected for the
// image backend, and can prompt for one. Hosts without a selection flow
// should report authorized so processing is not blocked.
type Authorizer interface {
	HasAuthorization() bool
	// RequestAuthorization asks the user to select an authorization and
	// reports whether one is now available.
	RequestAuthorization() bool
	// Invalidate clears the selection, typically after the backend rejected
	// the key, so the next start re-prompts.
	Invalidate()
}

// EnvAuthorizer derives authorization state from the GEMINI_API_KEY
// environment variable.
type EnvAuthorizer struct {
	mu          sync.Mutex
	invalidated bool
}

func NewEnvAuthorizer() *EnvAuthorizer {
	return &EnvAuthorizer{}
}

func (a *EnvAuthorizer) HasAuthorization() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.invalidated && os.Getenv("GEMINI_API_KEY") != ""
}

func (a *EnvAuthorizer) RequestAuthorization() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; set it and restart to generate images")
		return false
	}
	// A present key counts as a fresh selection.
	a.invalidated = false
	return true
}

func (a *EnvAuthorizer) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.invalidated = true
	log.Warn().Msg("image backend rejected the API key; authorization cleared")
}
