package main

import (
	"fmt"
	"html"
	"net/http"
	"net/url"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/route"
)

// server is a stand-in identity provider for local development: it signs
// users in against the account store and redirects back to the gateway's
// callback with the token pair in the URL fragment, the way the hosted
// provider does.
type server struct {
	app        *echo.Echo
	conf       *core.Config
	acctSvc    *account.Service
	issuer     *account.Issuer
	validate   *validator.Validate
	translator ut.Translator
}

func newServer(
	conf *core.Config,
	acctSvc *account.Service,
	issuer *account.Issuer,
	validate *validator.Validate,
	translator ut.Translator,
) *server {
	s := &server{
		app:        echo.New(),
		conf:       conf,
		acctSvc:    acctSvc,
		issuer:     issuer,
		validate:   validate,
		translator: translator,
	}
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.Logger())
	s.app.GET("/", s.signInForm)
	s.app.POST("/signin", s.signIn)
	return s
}

func (s *server) start(addr string) {
	s.app.Logger.Fatal(s.app.Start(addr))
}

func (s *server) signInForm(ctx echo.Context) error {
	return s.renderForm(ctx, "")
}

func (s *server) renderForm(ctx echo.Context, errMsg string) error {
	var alert string
	if errMsg != "" {
		alert = fmt.Sprintf(`<p class="error">%s</p>`, html.EscapeString(errMsg))
	}
	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Darasa ID</title></head>
<body>
<h1>Darasa ID</h1>
%s
<form method="post" action="/signin">
	<input type="email" name="email" placeholder="Email" required>
	<input type="password" name="password" placeholder="Password" required>
	<button type="submit">Sign in</button>
</form>
</body>
</html>
`, alert)
	return ctx.HTML(http.StatusOK, page)
}

func (s *server) signIn(ctx echo.Context) error {
	var data account.SignIn
	if err := ctx.Bind(&data); err != nil {
		return s.renderForm(ctx, "invalid request")
	}
	if err := data.Validate(s.validate); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
			return s.renderForm(ctx, vErrs[0].Field()+": "+vErrs[0].Translate(s.translator))
		}
		return s.renderForm(ctx, "invalid request")
	}

	acct, err := s.acctSvc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		switch err {
		case account.ErrAuthenticationFailed, account.ErrAccountDeactivated:
			return s.renderForm(ctx, err.Error())
		default:
			return err
		}
	}

	accessToken, refreshToken, err := s.issuer.IssueTokens(acct)
	if err != nil {
		return err
	}

	// hand the tokens back the way the hosted provider does: in the fragment
	frag := make(url.Values)
	frag.Set("access_token", accessToken)
	frag.Set("refresh_token", refreshToken)
	target := s.conf.FrontendBaseURL + route.CallbackPath + "#" + frag.Encode()
	return ctx.Redirect(http.StatusFound, target)
}
