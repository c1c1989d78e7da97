package translate

import (
	"fmt"
	"strings"
)

// UnknownProviderError is returned when a provider ID is not in the registry.
type UnknownProviderError struct {
	ID string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q (available: %s)", e.ID, strings.Join(ProviderIDs(), ", "))
}

// ConfigurationError is returned when a request cannot be built from the
// configured provider, e.g. no endpoint URL is known.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Reason)
}

// ProviderError is returned when the provider reports an error payload or
// answers with a non-success status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s error: %s", e.Provider, e.Message)
}

// MalformedResponseError is returned when the response body is not JSON or
// the result path cannot be resolved in it.
type MalformedResponseError struct {
	Provider string
	Path     string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("provider %s: malformed response: %s", e.Provider, e.Reason)
	}
	return fmt.Sprintf("provider %s: malformed response at %q: %s", e.Provider, e.Path, e.Reason)
}

// NetworkError is returned when the HTTP request never completed.
type NetworkError struct {
	Provider string
	URL      string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("provider %s: request to %s failed: %v", e.Provider, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TranslationError wraps the failure of a single leaf and aborts the whole
// tree translation. Key is the dotted path of the failing leaf.
type TranslationError struct {
	Key string
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translating %q: %v", e.Key, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }
