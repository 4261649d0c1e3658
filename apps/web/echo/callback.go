package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/route"
	"github.com/trezcool/darasa/core/session"
)

// completeCallbackPath receives the credentials relayed out of the URL
// fragment by the callback page's script.
const completeCallbackPath = route.CallbackPath + "/complete"

func (s *server) registerCallback() {
	s.app.GET(route.CallbackPath, s.callbackPage, s.navigate)
	s.app.GET(completeCallbackPath, s.completeCallback)
}

// callbackPage is what the identity provider redirects to. The token pair
// arrives in the URL fragment, which never reaches the server, so the page
// shows an indeterminate-progress placeholder (no interactive affordances)
// while a small script forwards the fragment to the completion endpoint.
func (s *server) callbackPage(ctx echo.Context) error {
	const body = `<p aria-busy="true">Signing you in&hellip;</p>
<script>
	window.location.replace("` + completeCallbackPath + `?" + window.location.hash.replace(/^#/, ""));
</script>`
	return ctx.HTML(http.StatusOK, renderPage("Signing in", body))
}

// completeCallback finishes the redirect: on success the user proceeds to
// the default authenticated destination, on any failure they return to the
// sign-in entry point. Failures are recovered here and never surface as an
// error page.
func (s *server) completeCallback(ctx echo.Context) error {
	completer := session.NewCompleter(s.opts.SessionSvc)
	if err := completer.Complete(ctx.Request().Context(), ctx.Request().URL); err != nil {
		s.opts.Logger.Info("callback completion failed", err)
		return ctx.Redirect(http.StatusSeeOther, route.SignInPath)
	}
	return ctx.Redirect(http.StatusSeeOther, route.DefaultAuthenticatedPath)
}
