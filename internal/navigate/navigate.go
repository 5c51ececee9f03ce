// Package navigate gates routes on the session status and role.
package navigate

import (
	"context"
	"strings"

	"tasktrack/internal/service"
	"tasktrack/internal/session"
)

// Routes.
const (
	Login         = "/login"
	Forbidden     = "/forbidden"
	AppTasks      = "/app/tasks"
	AppSettings   = "/app/settings"
	AdminTasks    = "/admin/tasks"
	AdminUsers    = "/admin/users"
	AdminSettings = "/admin/settings"
)

var adminOnly = []service.Role{service.RoleAdmin}

// routeRoles lists the roles allowed on each guarded route. An empty
// slice admits any authenticated user.
var routeRoles = map[string][]service.Role{
	AppTasks:      {},
	AppSettings:   {},
	AdminTasks:    adminOnly,
	AdminUsers:    adminOnly,
	AdminSettings: adminOnly,
}

// RouteRoles returns the roles allowed on path and whether the path is guarded.
// Paths under a guarded prefix inherit its roles.
func RouteRoles(path string) ([]service.Role, bool) {
	path = strings.TrimSuffix(path, "/")
	if roles, ok := routeRoles[path]; ok {
		return roles, true
	}
	switch {
	case path == session.HomeAdmin || strings.HasPrefix(path, session.HomeAdmin+"/"):
		return adminOnly, true
	case path == session.HomeApp || strings.HasPrefix(path, session.HomeApp+"/"):
		return []service.Role{}, true
	}
	return nil, false
}

// Outcome is what the gate decided.
type Outcome int

const (
	// Suspend means the session is unresolved; render nothing yet.
	Suspend Outcome = iota
	// Redirect means go to Decision.To instead.
	Redirect
	// Allow means render the requested route.
	Allow
)

func (o Outcome) String() string {
	switch o {
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "suspend"
	}
}

// Decision is the result of one gate evaluation.
type Decision struct {
	Outcome Outcome
	// To is the redirect target.
	To string
	// From is the originally requested path, kept for the post-login redirect.
	From string
}

// Guard is the gate evaluated on every navigation.
func Guard(sess session.Session, path string, roles []service.Role) Decision {
	switch sess.Status {
	case session.StatusUnknown:
		return Decision{Outcome: Suspend}
	case session.StatusUnauthenticated:
		return Decision{Outcome: Redirect, To: Login, From: path}
	}

	if len(roles) > 0 && !hasRole(roles, sess.Role()) {
		return Decision{Outcome: Redirect, To: Forbidden}
	}
	return Decision{Outcome: Allow}
}

func hasRole(roles []service.Role, role service.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Resolve ensures the session is known and evaluates the gate for path.
// Unguarded paths are always allowed.
func Resolve(ctx context.Context, store *session.Store, path string) Decision {
	roles, guarded := RouteRoles(path)
	if !guarded {
		return Decision{Outcome: Allow}
	}
	store.EnsureSession(ctx)
	return Guard(store.Snapshot(), path, roles)
}

// AfterLogin returns where to go once signed in: the path the user was
// bounced from, or the role's home.
func AfterLogin(from string, role service.Role) string {
	if from != "" && from != Login && from != Forbidden {
		return from
	}
	return session.HomeByRole(role)
}
