package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	aerrors "go.hackfix.me/banyan/app/errors"
)

// Dispatcher binds handlers to routes. Registration functions receive it
// instead of a concrete router.
type Dispatcher interface {
	// Route returns a function that registers a handler for requests matching
	// pattern and one of methods. If no methods are given, requests with any
	// method are matched.
	Route(pattern string, methods ...string) Register
}

// Route describes a registered route.
type Route struct {
	Pattern string
	Methods []string
}

// Router dispatches requests to registered handlers. Route matching is
// delegated to http.ServeMux, so patterns use its syntax, without the method
// prefix.
//
// Errors returned by handlers are logged, and answered with a generic 500
// Internal Server Error response.
type Router struct {
	mux    *http.ServeMux
	logger *slog.Logger

	mx     sync.RWMutex
	routes []Route
}

var (
	_ Dispatcher   = (*Router)(nil)
	_ http.Handler = (*Router)(nil)
)

// NewRouter returns a new Router without any routes.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{mux: http.NewServeMux(), logger: logger}
}

// Route implements the Dispatcher interface. Registering a pattern that
// conflicts with an existing one panics, like http.ServeMux.Handle does.
func (rt *Router) Route(pattern string, methods ...string) Register {
	return func(h Handler) {
		hh := rt.httpHandler(h)
		if len(methods) == 0 {
			rt.mux.Handle(pattern, hh)
		}
		for _, m := range methods {
			rt.mux.Handle(m+" "+pattern, hh)
		}

		rt.mx.Lock()
		rt.routes = append(rt.routes, Route{Pattern: pattern, Methods: slices.Clone(methods)})
		rt.mx.Unlock()
	}
}

// Routes returns the registered routes, in registration order.
func (rt *Router) Routes() []Route {
	rt.mx.RLock()
	defer rt.mx.RUnlock()

	return slices.Clone(rt.routes)
}

// ServeHTTP implements the http.Handler interface.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

func (rt *Router) httpHandler(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := NewRequest(r)

		resp, err := h(req)
		if err == nil && resp == nil {
			err = errors.New("handler returned no response")
		}
		if err != nil {
			rt.handleError(w, req, err)
			return
		}

		if err = resp.Write(w); err != nil {
			rt.logger.Error("failed writing response",
				"method", req.Method(), "path", req.Path(), "error", err.Error())
		}
	})
}

func (rt *Router) handleError(w http.ResponseWriter, req *Request, err error) {
	aerrors.LogTo(rt.logger,
		aerrors.WithCause(errors.New("failed handling request"), err,
			"method", req.Method(), "path", req.Path()))

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
