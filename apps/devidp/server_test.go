package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/session"
	identitysvc "github.com/trezcool/darasa/services/identity"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func newTestServer(t *testing.T) (*server, *core.Config, *account.Service) {
	t.Helper()

	conf := &core.Config{
		AppName:         "Darasa",
		SecretKey:       "secret",
		FrontendBaseURL: "http://localhost:8000",
	}
	conf.Auth.AccessTokenExpiration = time.Hour

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("newTestServer() failed: %v", err)
	}
	acctSvc := account.NewService(inmemdb.NewAccountRepository(db))

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	return newServer(conf, acctSvc, account.NewIssuer(conf), validate, translator), conf, acctSvc
}

func postSignIn(s *server, email, pwd string) *httptest.ResponseRecorder {
	form := make(url.Values)
	form.Set("email", email)
	form.Set("password", pwd)
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)
	return rec
}

func TestServer_signInForm(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/signin"`)
}

func TestServer_signIn(t *testing.T) {
	s, conf, acctSvc := newTestServer(t)
	if _, err := acctSvc.Create(context.Background(), account.NewAccount{
		Email:           "jane@test.cd",
		Password:        "LordOfTheRings",
		PasswordConfirm: "LordOfTheRings",
		IsPaid:          true,
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	t.Run("invalid email re-renders the form", func(t *testing.T) {
		rec := postSignIn(s, "not-an-email", "LordOfTheRings")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})

	t.Run("wrong password re-renders the form", func(t *testing.T) {
		rec := postSignIn(s, "jane@test.cd", "GameOfThrones")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), account.ErrAuthenticationFailed.Error())
	})

	t.Run("valid credentials redirect to the gateway callback", func(t *testing.T) {
		rec := postSignIn(s, "jane@test.cd", "LordOfTheRings")
		assert.Equal(t, http.StatusFound, rec.Code)

		loc, err := url.Parse(rec.Header().Get("Location"))
		if err != nil {
			t.Fatalf("parsing Location failed: %v", err)
		}
		assert.Equal(t, "/auth/callback", loc.Path)

		// the issued pair must be accepted by the gateway's backend
		accessToken, refreshToken := session.ExtractCredentials(loc)
		assert.NotEmpty(t, refreshToken)
		usr, err := identitysvc.NewJWTBackend(conf).Establish(context.Background(), accessToken, refreshToken)
		if err != nil {
			t.Fatalf("Establish() failed: %v", err)
		}
		assert.Equal(t, "jane@test.cd", usr.Email)
		assert.True(t, usr.Metadata.IsPaid)
		assert.False(t, usr.Metadata.IsAdmin)
	})
}
