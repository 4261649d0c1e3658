package route

import "github.com/trezcool/darasa/core/session"

// Paths exposed by the gateway.
const (
	LandingPath  = "/"
	SignInPath   = "/auth"
	CallbackPath = "/auth/callback"
	SignOutPath  = "/signout"

	DashboardPath  = "/dashboard"
	FlashcardsPath = "/flashcards"
	QuizzesPath    = "/quizzes"

	LibraryPath       = "/library"
	CoursesPath       = "/courses"
	SubscriptionsPath = "/subscriptions"

	AdminPath     = "/admin"
	AdminPagePath = "/admin-page"

	// DefaultAuthenticatedPath is where signed-in users land by default.
	DefaultAuthenticatedPath = DashboardPath
)

type DecisionKind int

const (
	// RenderPage serves the requested page on the current path.
	RenderPage DecisionKind = iota
	// RenderLocked serves the locked-content placeholder on the current path.
	RenderLocked
	// Redirect navigates away to Decision.Target.
	Redirect
)

// Decision is the navigation outcome of an authorization check. Decisions
// are plain values; applying them (rendering, redirecting) is the server's
// job, so the policy below stays pure and testable.
type Decision struct {
	Kind   DecisionKind
	Target string // redirect target; empty unless Kind == Redirect
}

func renderPage() Decision   { return Decision{Kind: RenderPage} }
func renderLocked() Decision { return Decision{Kind: RenderLocked} }

func redirect(target string) Decision { return Decision{Kind: Redirect, Target: target} }

// Authenticated gates pages that require a signed-in user.
// Anonymous visitors are sent to the sign-in entry point.
func Authenticated(role session.Role) Decision {
	if role == session.RoleAnonymous {
		return redirect(SignInPath)
	}
	return renderPage()
}

// Entitled gates premium pages. It wraps Authenticated, so anonymous
// visitors are redirected; signed-in users lacking entitlement stay on the
// current path and get the locked placeholder instead. The soft denial is
// deliberate: the page is reachable, only its content is paywalled.
func Entitled(role session.Role) Decision {
	if d := Authenticated(role); d.Kind != RenderPage {
		return d
	}
	if !role.Entitled() {
		return renderLocked()
	}
	return renderPage()
}

// Admin gates admin pages. Anonymous visitors go to sign-in; signed-in
// non-admins are hard-redirected to the default authenticated destination.
func Admin(role session.Role) Decision {
	switch role {
	case session.RoleAnonymous:
		return redirect(SignInPath)
	case session.RoleAdmin:
		return renderPage()
	default:
		return redirect(DefaultAuthenticatedPath)
	}
}

// Access is the guard tier a path is bound to.
type Access int

const (
	// AccessPublic renders for everyone (eg. the auth callback).
	AccessPublic Access = iota
	// AccessPublicOnly renders for anonymous visitors only; signed-in users
	// are bounced to the default authenticated destination.
	AccessPublicOnly
	AccessAuthenticated
	AccessEntitled
	AccessAdmin
)

// Table maps each exposed path to exactly one guard tier.
type Table map[string]Access

// DefaultTable binds the gateway's paths to their tiers.
func DefaultTable() Table {
	return Table{
		LandingPath:  AccessPublicOnly,
		SignInPath:   AccessPublicOnly,
		CallbackPath: AccessPublic,

		DashboardPath:  AccessAuthenticated,
		FlashcardsPath: AccessAuthenticated,
		QuizzesPath:    AccessAuthenticated,

		LibraryPath:       AccessEntitled,
		CoursesPath:       AccessEntitled,
		SubscriptionsPath: AccessEntitled,

		AdminPath:     AccessAdmin,
		AdminPagePath: AccessAdmin,
	}
}

// Resolve computes the single navigation decision for a (role, path)
// navigation intent. Unrecognized paths redirect to the landing page.
// Resolve is recomputed on every navigation and session transition; roles
// are never cached across calls.
func (t Table) Resolve(role session.Role, path string) Decision {
	access, ok := t[path]
	if !ok {
		return redirect(LandingPath)
	}

	switch access {
	case AccessPublicOnly:
		if role != session.RoleAnonymous {
			return redirect(DefaultAuthenticatedPath)
		}
		return renderPage()
	case AccessAuthenticated:
		return Authenticated(role)
	case AccessEntitled:
		return Entitled(role)
	case AccessAdmin:
		return Admin(role)
	default:
		return renderPage()
	}
}
