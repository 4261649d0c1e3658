package session_test

import (
	"context"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/session"
	dummyidentity "github.com/trezcool/darasa/services/identity/dummy"
)

func setup(t *testing.T) (*session.Service, *session.Store, *dummyidentity.Service) {
	t.Helper()
	store := session.NewStore()
	backend := dummyidentity.NewService()
	backend.User = session.User{ID: "4be141dd-54a2-41c8-8a37-1986a7c9df1b", Email: "jane@test.cd"}
	return session.NewService(store, backend), store, backend
}

func TestService_SetSession(t *testing.T) {
	t.Run("missing token fails without a backend call", func(t *testing.T) {
		svc, store, backend := setup(t)

		for _, pair := range [][2]string{{"", ""}, {"abc", ""}, {"", "def"}} {
			_, err := svc.SetSession(context.Background(), pair[0], pair[1])
			if err != session.ErrInvalidCredentials {
				t.Errorf("SetSession(%q, %q) error = %v, want ErrInvalidCredentials", pair[0], pair[1], err)
			}
		}
		assert.Empty(t, backend.Established)
		assert.Nil(t, store.Current())
	})

	t.Run("backend rejection leaves prior session untouched", func(t *testing.T) {
		svc, store, backend := setup(t)

		prior, err := svc.SetSession(context.Background(), "abc", "def")
		if err != nil {
			t.Fatalf("SetSession() failed: %v", err)
		}

		backend.Err = pkgerrors.New("token revoked")
		_, err = svc.SetSession(context.Background(), "bad", "worse")
		if pkgerrors.Cause(err) != session.ErrSessionRejected {
			t.Errorf("SetSession() error cause = %v, want ErrSessionRejected", err)
		}
		if got := store.Current(); got == nil || got.AccessToken != prior.AccessToken {
			t.Errorf("Current() = %v, want prior session retained", got)
		}
	})

	t.Run("success commits and notifies", func(t *testing.T) {
		svc, store, _ := setup(t)

		var notified int
		svc.Subscribe(func(sess *session.Session) { notified++ })

		sess, err := svc.SetSession(context.Background(), "abc", "def")
		if err != nil {
			t.Fatalf("SetSession() failed: %v", err)
		}
		assert.Equal(t, "abc", sess.AccessToken)
		assert.Equal(t, "def", sess.RefreshToken)
		assert.Equal(t, 1, notified)

		got := store.Current()
		if got == nil || got.User == nil || got.User.ID != sess.User.ID {
			t.Errorf("Current() = %v, want committed session", got)
		}
	})

	t.Run("cancelled ctx aborts the commit", func(t *testing.T) {
		svc, store, _ := setup(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.SetSession(ctx, "abc", "def")
		if err != context.Canceled {
			t.Errorf("SetSession() error = %v, want context.Canceled", err)
		}
		assert.Nil(t, store.Current())
	})
}

func TestService_ClearSession(t *testing.T) {
	svc, store, _ := setup(t)

	if _, err := svc.SetSession(context.Background(), "abc", "def"); err != nil {
		t.Fatalf("SetSession() failed: %v", err)
	}

	var notified int
	svc.Subscribe(func(sess *session.Session) {
		notified++
		if sess != nil {
			t.Errorf("subscriber got %v, want nil on sign-out", sess)
		}
	})

	svc.ClearSession()
	assert.Nil(t, store.Current())
	assert.Equal(t, 1, notified)
}
