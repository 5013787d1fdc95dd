package swaps

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrQuoteExpired marks a held or cached quote whose validity window has
// passed; callers must re-fetch.
var ErrQuoteExpired = errors.New("quote expired")

// ErrExpiredQuoteExecution marks an attempt to execute an expired quote,
// detected at submission time by the execution layer.
var ErrExpiredQuoteExecution = errors.New("cannot execute expired quote")

// ValidationError reports malformed or out-of-range input. It is detected
// before any network call and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TimeoutError reports a single provider exceeding its per-call timeout.
// Distinguished from ProviderError so callers can reason about retries.
type TimeoutError struct {
	Provider string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %s timed out", e.Provider)
}

// ProviderError reports a non-success response from a single provider.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider %s returned %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("provider %s returned %d: %s", e.Provider, e.Status, e.Body)
}

// AllProvidersFailedError means a pool fan-out produced zero usable quotes.
// It carries the per-provider errors for diagnostics.
type AllProvidersFailedError struct {
	Errs map[string]error
}

func (e *AllProvidersFailedError) Error() string {
	if len(e.Errs) == 0 {
		return "all providers failed"
	}
	names := make([]string, 0, len(e.Errs))
	for name := range e.Errs {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", name, e.Errs[name]))
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

// QuoteUnavailableError is the terminal failure surfaced after retries are
// exhausted. Last is the final observed pool failure.
type QuoteUnavailableError struct {
	Last error
}

func (e *QuoteUnavailableError) Error() string {
	if e.Last == nil {
		return "quote unavailable"
	}
	return fmt.Sprintf("quote unavailable: %v", e.Last)
}

func (e *QuoteUnavailableError) Unwrap() error {
	return e.Last
}
