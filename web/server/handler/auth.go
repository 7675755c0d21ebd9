package handler

import "net/http"

// Checker decides whether the current request is authenticated. How the
// authentication state is obtained is entirely up to the implementation.
// Check is called once per request that reaches an authenticated handler, and
// must not block indefinitely.
type Checker interface {
	Check() bool
}

// CheckFunc is an adapter to allow using an ordinary function as a Checker.
type CheckFunc func() bool

var _ Checker = CheckFunc(nil)

// Check calls f().
func (f CheckFunc) Check() bool {
	return f()
}

var (
	// AllowAll is a Checker that authenticates every request.
	AllowAll Checker = CheckFunc(func() bool { return true })
	// DenyAll is a Checker that rejects every request.
	DenyAll Checker = CheckFunc(func() bool { return false })
)

// Authenticator creates a middleware that only lets requests through to the
// wrapped handler if c reports them as authenticated. Otherwise it responds
// with status 403 Forbidden and a "not authenticated" Result, and the wrapped
// handler is never called.
func Authenticator(c Checker) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (Response, error) {
			if c.Check() {
				return next(req)
			}

			return ErrorResult(http.StatusForbidden, "not authenticated"), nil
		}
	}
}
