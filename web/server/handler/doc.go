// Package handler contains helpers to assemble HTTP handler implementations
// from small composable parts. Core handlers implement only the business logic
// unique to each endpoint, and return a Response value instead of writing to
// the connection directly. Cross-cutting behavior, such as authentication or
// response formatting, is added by wrapping them in Middleware before the
// result is bound to a route of the Router.
//
// It is similar in principle to HTTP middlewares, but using handlers that
// return values, which keeps short-circuiting and error propagation explicit.
package handler
