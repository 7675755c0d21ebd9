package middleware

import (
	"fmt"

	"github.com/jub0bs/cors"
)

// CORS returns a middleware that allows cross-origin requests from any origin,
// with any method and request headers. It's meant for development setups where
// the web application is served from a different origin than the API.
func CORS() (Middleware, error) {
	mw, err := cors.NewMiddleware(cors.Config{
		Origins:        []string{"*"},
		Methods:        []string{"*"},
		RequestHeaders: []string{"*"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed configuring CORS middleware: %w", err)
	}

	return mw.Wrap, nil
}
