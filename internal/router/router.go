// Package router declares the page routes of the workspace and guards the
// ones that need a session.
package router

import (
	"log"
	"net/http"
)

// Page paths.
const (
	LoginPath = "/"
	MainPath  = "/main"
)

// Route is a navigable page.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
}

var routes = []Route{
	{Path: LoginPath, Name: "login", RequiresAuth: false},
	{Path: MainPath, Name: "main", RequiresAuth: true},
}

// Routes returns the page routes in declaration order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup returns the route registered for path.
func Lookup(path string) (Route, bool) {
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// SessionChecker reports whether the request belongs to a logged-in user.
type SessionChecker interface {
	LoggedIn(r *http.Request) bool
}

// SessionFunc adapts a function to SessionChecker.
type SessionFunc func(r *http.Request) bool

// LoggedIn calls f(r).
func (f SessionFunc) LoggedIn(r *http.Request) bool {
	return f(r)
}

// Guard blocks protected routes for anonymous users.
type Guard struct {
	Session SessionChecker
}

// NewGuard creates a guard backed by session.
func NewGuard(session SessionChecker) *Guard {
	return &Guard{Session: session}
}

// Check decides whether navigation to path may proceed. When it may not,
// redirect names the page to send the user to instead. Unknown paths proceed.
func (g *Guard) Check(path string, loggedIn bool) (redirect string, ok bool) {
	route, found := Lookup(path)
	if !found {
		return "", true
	}
	if route.RequiresAuth && !loggedIn {
		return LoginPath, false
	}
	return "", true
}

// Middleware applies Check to every request, answering blocked ones with a
// 303 redirect.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if redirect, ok := g.Check(r.URL.Path, g.Session.LoggedIn(r)); !ok {
			log.Printf("[Router] Blocked %s, redirecting to %s", r.URL.Path, redirect)
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
