package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/route"
	"github.com/trezcool/darasa/core/session"
)

const contextSessionKey = "session"

// navigate is the single navigation executor. It derives the Role fresh from
// the current session on every request, resolves the routing policy and
// applies the resulting decision; page handlers only ever run once their
// content is allowed to render, so no protected content can flash before a
// redirect.
func (s *server) navigate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess := s.opts.SessionSvc.Current()
		ctx.Set(contextSessionKey, sess)
		role := session.DeriveRole(sess)

		switch decision := s.table.Resolve(role, ctx.Request().URL.Path); decision.Kind {
		case route.Redirect:
			return ctx.Redirect(http.StatusSeeOther, decision.Target)
		case route.RenderLocked:
			return s.lockedPage(ctx)
		default:
			return next(ctx)
		}
	}
}
