package session

import (
	"context"
	"errors"
	"net/url"
	"sync"
)

var (
	// ErrAlreadyCompleted is returned when a Completer is invoked more than
	// once for the same redirect event.
	ErrAlreadyCompleted = errors.New("redirect already completed")
)

// ExtractCredentials pulls the token pair out of an identity-provider
// redirect URL. The provider returns the tokens in the URL fragment
// (`access_token=...&refresh_token=...`); the query string is accepted as a
// fallback since fragments never reach a server directly. Extraction is
// idempotent: the same URL always yields the same pair.
func ExtractCredentials(redirect *url.URL) (accessToken, refreshToken string) {
	vals, err := url.ParseQuery(redirect.Fragment)
	if err != nil || (vals.Get("access_token") == "" && vals.Get("refresh_token") == "") {
		vals = redirect.Query()
	}
	return vals.Get("access_token"), vals.Get("refresh_token")
}

// Completer finishes an identity-provider redirect exactly once.
// A nil error means the caller should proceed to the default authenticated
// destination; any error means it should return to the sign-in entry point.
// The zero value is not usable; use NewCompleter.
type Completer struct {
	svc *Service

	mu   sync.Mutex
	done bool
}

func NewCompleter(svc *Service) *Completer {
	return &Completer{svc: svc}
}

// Complete extracts the token pair from redirect and commits it via the
// session Service. A second call, including one issued while the first is
// still pending, fails with ErrAlreadyCompleted so the resulting navigation
// fires at most once. Cancelling ctx before the establishment call resolves
// prevents the session update from being applied.
func (c *Completer) Complete(ctx context.Context, redirect *url.URL) error {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return ErrAlreadyCompleted
	}
	c.done = true
	c.mu.Unlock()

	accessToken, refreshToken := ExtractCredentials(redirect)
	_, err := c.svc.SetSession(ctx, accessToken, refreshToken)
	return err
}
