// Package api contains the HTTP API endpoints of the Banyan web server.
package api

import (
	"net/http"

	"go.hackfix.me/banyan/web/server/handler"
)

// Options configures the API endpoints.
type Options struct {
	// Auth decides whether requests to protected endpoints are authenticated.
	// If nil, all requests to them are rejected.
	Auth handler.Checker
	Info Info
}

// SetupHandlers registers the API endpoints on d.
func SetupHandlers(d handler.Dispatcher, opts Options) {
	auth := opts.Auth
	if auth == nil {
		auth = handler.DenyAll
	}
	authenticate := handler.Authenticator(auth)

	// Unauthenticated routes
	handler.Compose(d.Route("/api/hello", http.MethodGet, http.MethodPost),
		Hello(), handler.NoStore())
	handler.Compose(d.Route("/api/info", http.MethodGet),
		opts.Info.Handler(), handler.NoStore())

	// Authenticated routes
	handler.Compose(d.Route("/api/auth/hello", http.MethodGet, http.MethodPost),
		Hello(), handler.NoStore(), authenticate)
}
