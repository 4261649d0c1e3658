package session

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionRejected    = errors.New("session rejected by identity backend")
)

type (
	// Backend establishes a session with the identity/session backend from a
	// token pair. The transport and token formats are owned by the backend;
	// this layer only checks token presence.
	Backend interface {
		Establish(ctx context.Context, accessToken, refreshToken string) (User, error)
	}

	// Service is the single writer path to the session Store.
	Service struct {
		store   *Store
		backend Backend
	}
)

func NewService(store *Store, backend Backend) *Service {
	return &Service{store: store, backend: backend}
}

// Current returns the live Session, or nil when signed out.
func (svc *Service) Current() *Session {
	return svc.store.Current()
}

// Subscribe registers fn for session transition notifications.
func (svc *Service) Subscribe(fn func(*Session)) (unsubscribe func()) {
	return svc.store.Subscribe(fn)
}

// SetSession validates the token pair, establishes a session with the
// backend and commits it to the Store. On any failure the prior session is
// left untouched. A cancelled ctx aborts the commit even when the backend
// call already resolved, so a torn-down caller can not apply an orphaned
// session update.
func (svc *Service) SetSession(ctx context.Context, accessToken, refreshToken string) (Session, error) {
	if accessToken == "" || refreshToken == "" {
		return Session{}, ErrInvalidCredentials
	}

	usr, err := svc.backend.Establish(ctx, accessToken, refreshToken)
	if err != nil {
		return Session{}, pkgerrors.WithMessage(ErrSessionRejected, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	sess := &Session{
		User:         &usr,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	svc.store.set(sess)
	return *sess, nil
}

// ClearSession signs out: the session becomes absent and subscribers are notified.
func (svc *Service) ClearSession() {
	svc.store.set(nil)
}
