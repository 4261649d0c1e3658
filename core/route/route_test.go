package route

import (
	"testing"

	"github.com/trezcool/darasa/core/session"
)

var allRoles = []session.Role{
	session.RoleAnonymous,
	session.RoleAuthenticated,
	session.RoleEntitled,
	session.RoleAdmin,
}

func TestGuards(t *testing.T) {
	tests := []struct {
		name  string
		guard func(session.Role) Decision
		role  session.Role
		want  Decision
	}{
		{name: "authenticated: anonymous", guard: Authenticated, role: session.RoleAnonymous, want: Decision{Kind: Redirect, Target: SignInPath}},
		{name: "authenticated: signed in", guard: Authenticated, role: session.RoleAuthenticated, want: Decision{Kind: RenderPage}},
		{name: "authenticated: admin", guard: Authenticated, role: session.RoleAdmin, want: Decision{Kind: RenderPage}},

		// anonymous visitors hit the authentication redirect before the
		// entitlement check is ever evaluated
		{name: "entitled: anonymous", guard: Entitled, role: session.RoleAnonymous, want: Decision{Kind: Redirect, Target: SignInPath}},
		{name: "entitled: unpaid", guard: Entitled, role: session.RoleAuthenticated, want: Decision{Kind: RenderLocked}},
		{name: "entitled: paid", guard: Entitled, role: session.RoleEntitled, want: Decision{Kind: RenderPage}},
		{name: "entitled: admin", guard: Entitled, role: session.RoleAdmin, want: Decision{Kind: RenderPage}},

		{name: "admin: anonymous", guard: Admin, role: session.RoleAnonymous, want: Decision{Kind: Redirect, Target: SignInPath}},
		{name: "admin: unpaid", guard: Admin, role: session.RoleAuthenticated, want: Decision{Kind: Redirect, Target: DefaultAuthenticatedPath}},
		{name: "admin: paid", guard: Admin, role: session.RoleEntitled, want: Decision{Kind: Redirect, Target: DefaultAuthenticatedPath}},
		{name: "admin: admin", guard: Admin, role: session.RoleAdmin, want: Decision{Kind: RenderPage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.guard(tt.role); got != tt.want {
				t.Errorf("guard(%v) = %+v, want %+v", tt.role, got, tt.want)
			}
		})
	}
}

func TestTable_Resolve(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		role session.Role
		path string
		want Decision
	}{
		// landing & sign-in bounce signed-in users to the app
		{name: "anonymous on landing", role: session.RoleAnonymous, path: LandingPath, want: Decision{Kind: RenderPage}},
		{name: "authenticated on landing", role: session.RoleAuthenticated, path: LandingPath, want: Decision{Kind: Redirect, Target: DefaultAuthenticatedPath}},
		{name: "admin on landing", role: session.RoleAdmin, path: LandingPath, want: Decision{Kind: Redirect, Target: DefaultAuthenticatedPath}},
		{name: "anonymous on sign-in", role: session.RoleAnonymous, path: SignInPath, want: Decision{Kind: RenderPage}},
		{name: "entitled on sign-in", role: session.RoleEntitled, path: SignInPath, want: Decision{Kind: Redirect, Target: DefaultAuthenticatedPath}},

		// the callback page renders for everyone
		{name: "anonymous on callback", role: session.RoleAnonymous, path: CallbackPath, want: Decision{Kind: RenderPage}},

		{name: "anonymous on dashboard", role: session.RoleAnonymous, path: DashboardPath, want: Decision{Kind: Redirect, Target: SignInPath}},
		{name: "authenticated on dashboard", role: session.RoleAuthenticated, path: DashboardPath, want: Decision{Kind: RenderPage}},

		{name: "anonymous on library", role: session.RoleAnonymous, path: LibraryPath, want: Decision{Kind: Redirect, Target: SignInPath}},
		{name: "unpaid on library", role: session.RoleAuthenticated, path: LibraryPath, want: Decision{Kind: RenderLocked}},
		{name: "paid on courses", role: session.RoleEntitled, path: CoursesPath, want: Decision{Kind: RenderPage}},

		{name: "unpaid on admin", role: session.RoleAuthenticated, path: AdminPath, want: Decision{Kind: Redirect, Target: DefaultAuthenticatedPath}},
		{name: "admin on admin", role: session.RoleAdmin, path: AdminPath, want: Decision{Kind: RenderPage}},

		// catch-all
		{name: "anonymous on unknown path", role: session.RoleAnonymous, path: "/nope", want: Decision{Kind: Redirect, Target: LandingPath}},
		{name: "admin on unknown path", role: session.RoleAdmin, path: "/nope", want: Decision{Kind: Redirect, Target: LandingPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Resolve(tt.role, tt.path); got != tt.want {
				t.Errorf("Resolve(%v, %s) = %+v, want %+v", tt.role, tt.path, got, tt.want)
			}
		})
	}
}

func TestTable_Resolve_adminTiers(t *testing.T) {
	// an admin is allowed through all three gated tiers
	table := DefaultTable()
	for _, path := range []string{DashboardPath, LibraryPath, AdminPath} {
		if got := table.Resolve(session.RoleAdmin, path); got.Kind != RenderPage {
			t.Errorf("Resolve(admin, %s) = %+v, want RenderPage", path, got)
		}
	}
}

// Redirect chains must always terminate in a render for the same role: a
// path may bounce through the catch-all, but never loop.
func TestTable_Resolve_noRedirectLoop(t *testing.T) {
	table := DefaultTable()
	paths := make([]string, 0, len(table)+1)
	for path := range table {
		paths = append(paths, path)
	}
	paths = append(paths, "/nope")

	for _, role := range allRoles {
		for _, start := range paths {
			seen := map[string]bool{start: true}
			path := start
			for {
				d := table.Resolve(role, path)
				if d.Kind != Redirect {
					break
				}
				if seen[d.Target] {
					t.Fatalf("Resolve(%v, %s): redirect loop via %s", role, start, d.Target)
				}
				seen[d.Target] = true
				path = d.Target
			}
		}
	}
}

// A signed-in non-admin visiting an admin page is redirected exactly once,
// to the default authenticated destination, and that destination renders.
func TestTable_Resolve_adminDenialIsSingleRedirect(t *testing.T) {
	table := DefaultTable()
	for _, role := range []session.Role{session.RoleAuthenticated, session.RoleEntitled} {
		d := table.Resolve(role, AdminPath)
		if d.Kind != Redirect || d.Target != DefaultAuthenticatedPath {
			t.Fatalf("Resolve(%v, %s) = %+v, want redirect to %s", role, AdminPath, d, DefaultAuthenticatedPath)
		}
		if next := table.Resolve(role, d.Target); next.Kind != RenderPage {
			t.Errorf("Resolve(%v, %s) = %+v, want RenderPage after a single redirect", role, d.Target, next)
		}
	}
}
