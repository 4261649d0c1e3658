package echoweb

import (
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/route"
	"github.com/trezcool/darasa/core/session"
)

// The pages below are deliberately minimal chrome: the contract of this app
// is the paths and their guard tiers, not the markup.

func (s *server) registerPages() {
	s.app.GET(route.LandingPath, s.landingPage, s.navigate)
	s.app.GET(route.SignInPath, s.signInPage, s.navigate)

	s.app.GET(route.DashboardPath, s.staticPage("Dashboard", "Pick up where you left off."), s.navigate)
	s.app.GET(route.FlashcardsPath, s.staticPage("Flashcards", "Review your flashcard decks."), s.navigate)
	s.app.GET(route.QuizzesPath, s.staticPage("Quizzes", "Take and build quizzes."), s.navigate)

	s.app.GET(route.LibraryPath, s.staticPage("Library", "Browse the premium library."), s.navigate)
	s.app.GET(route.CoursesPath, s.staticPage("Courses", "Your enrolled courses."), s.navigate)
	s.app.GET(route.SubscriptionsPath, s.staticPage("Subscriptions", "Manage your subscription."), s.navigate)

	s.app.GET(route.AdminPath, s.staticPage("Admin Panel", "Platform administration."), s.navigate)
	s.app.GET(route.AdminPagePath, s.staticPage("Admin Page", "Administrative reports."), s.navigate)
}

func (s *server) landingPage(ctx echo.Context) error {
	body := fmt.Sprintf(`<p>Learn anything, one card at a time.</p><p><a href="%s">Sign in</a></p>`, route.SignInPath)
	return ctx.HTML(http.StatusOK, renderPage("Welcome to Darasa", body))
}

func (s *server) signInPage(ctx echo.Context) error {
	body := fmt.Sprintf(
		`<p><a href="%s">Continue with your Darasa ID</a></p>`,
		html.EscapeString(s.opts.Conf.Auth.IdentityProviderURL),
	)
	return ctx.HTML(http.StatusOK, renderPage("Sign in", body))
}

func (s *server) staticPage(title, blurb string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		body := fmt.Sprintf(`<p>%s</p>`, blurb)
		if sess := s.opts.SessionSvc.Current(); sess != nil && sess.User != nil {
			body += fmt.Sprintf(
				`<p class="whoami">Signed in as %s (%s) &middot; <a href="%s">Sign out</a></p>`,
				html.EscapeString(sess.User.Email), session.DeriveRole(sess), route.SignOutPath,
			)
		}
		return ctx.HTML(http.StatusOK, renderPage(title, body))
	}
}

func (s *server) lockedPage(ctx echo.Context) error {
	body := fmt.Sprintf(
		`<p>This feature is locked. Please subscribe to gain access.</p><p><a href="%s">See plans</a></p>`,
		route.SubscriptionsPath,
	)
	return ctx.HTML(http.StatusOK, renderPage("Locked", body))
}

func renderPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s - Darasa</title></head>
<body>
<h1>%s</h1>
%s
</body>
</html>
`, html.EscapeString(title), html.EscapeString(title), body)
}
