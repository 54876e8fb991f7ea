// Package nav gates navigation on session state. A route either renders,
// waits for the session bootstrap, or redirects: unauthenticated users go
// to the login route with the original destination remembered, and
// authenticated non-admins hitting an admin route are silently sent to the
// default page.
package nav

import "sync"

// Routes used by guard redirects
const (
	LoginRoute   = "/login"
	DefaultRoute = "/books"
)

// Policy is the access requirement attached to a route
type Policy int

const (
	// Public routes render for anyone
	Public Policy = iota
	// RequireAuth routes need an authenticated session
	RequireAuth
	// RequireAdmin routes need an authenticated admin; the auth check
	// applies first
	RequireAdmin
)

// Decision is the outcome of a navigation attempt
type Decision int

const (
	// Allowed renders the route
	Allowed Decision = iota
	// Pending defers the decision until session bootstrap completes
	Pending
	// Redirect sends the user elsewhere
	Redirect
	// NotFound means no such route is registered
	NotFound
)

// Result carries the guard decision. For a Redirect, To is the target and
// ReturnTo, when set, is the originally requested route to resume after
// login.
type Result struct {
	Decision Decision
	To       string
	ReturnTo string
}

// Session is the read-only session state the guards consult
type Session interface {
	Loading() bool
	IsAuthenticated() bool
	IsAdmin() bool
}

// Router maps routes to guard policies
type Router struct {
	session Session

	mu     sync.RWMutex
	routes map[string]Policy
}

// NewRouter creates a router over the given session state
func NewRouter(session Session) *Router {
	return &Router{
		session: session,
		routes:  make(map[string]Policy),
	}
}

// Register attaches a policy to a route path
func (r *Router) Register(path string, policy Policy) {
	r.mu.Lock()
	r.routes[path] = policy
	r.mu.Unlock()
}

// Navigate applies the route's guard to the current session state
func (r *Router) Navigate(path string) Result {
	r.mu.RLock()
	policy, ok := r.routes[path]
	r.mu.RUnlock()

	if !ok {
		return Result{Decision: NotFound}
	}
	if policy == Public {
		return Result{Decision: Allowed}
	}

	// Guarded routes defer while the session is still bootstrapping
	if r.session.Loading() {
		return Result{Decision: Pending}
	}

	if !r.session.IsAuthenticated() {
		return Result{Decision: Redirect, To: LoginRoute, ReturnTo: path}
	}

	if policy == RequireAdmin && !r.session.IsAdmin() {
		// Silent downgrade: no error is surfaced to the user
		return Result{Decision: Redirect, To: DefaultRoute}
	}

	return Result{Decision: Allowed}
}
