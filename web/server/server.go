package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	actx "go.hackfix.me/banyan/app/context"
	"go.hackfix.me/banyan/web/server/api"
	"go.hackfix.me/banyan/web/server/handler"
	"go.hackfix.me/banyan/web/server/middleware"
)

// Options configures the web server.
type Options struct {
	// Address is the [host]:port to listen on.
	Address string
	// StaticDir is the directory with the web application files.
	StaticDir string
	// Debug enables handling CORS requests from any origin.
	Debug bool
	// Auth authenticates requests to protected API endpoints.
	Auth handler.Checker

	ConnectHost string
	ConnectPort string
}

// Server is a wrapper around http.Server with some custom behavior.
type Server struct {
	*http.Server
	logger *slog.Logger
}

// New returns a new web Server instance that will listen on opts.Address.
func New(appCtx *actx.Context, opts Options) (*Server, error) {
	logger := appCtx.Logger.With("component", "web-server")

	h, err := SetupHandlers(appCtx, opts, logger)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		Server: &http.Server{
			Handler:           h,
			Addr:              opts.Address,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      10 * time.Minute,
		},
		logger: logger,
	}

	return srv, nil
}

// ListenAndServe starts the HTTP server. It stores the actual listen address,
// which is convenient when the address is dynamically determined by the
// system (e.g. ':0').
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		//nolint:wrapcheck // This is fine.
		return err
	}

	s.Addr = ln.Addr().String()
	s.logger.Info("started listener", "address", s.Addr)

	//nolint:wrapcheck // This is fine.
	return s.Serve(ln)
}

// SetupHandlers configures the server HTTP handlers, and wraps them with
// request tagging, logging and, in debug mode, CORS middlewares.
func SetupHandlers(appCtx *actx.Context, opts Options, logger *slog.Logger) (http.Handler, error) {
	mws := []middleware.Middleware{middleware.RequestID(), middleware.Logger(logger)}
	if opts.Debug {
		cors, err := middleware.CORS()
		if err != nil {
			return nil, err
		}
		mws = append(mws, cors)
		logger.Debug("enabled handling of CORS requests")
	}

	return middleware.Chain(Routes(appCtx, opts, logger), mws...), nil
}

// Routes returns the router with all application routes registered. Static
// files are only served for GET requests. Requests with other methods for
// paths outside of the API are answered with 405 Method Not Allowed.
func Routes(appCtx *actx.Context, opts Options, logger *slog.Logger) *handler.Router {
	rt := handler.NewRouter(logger)

	api.SetupHandlers(rt, api.Options{
		Auth: opts.Auth,
		Info: api.Info{
			Version:     appCtx.Version.String(),
			ConnectHost: opts.ConnectHost,
			ConnectPort: opts.ConnectPort,
		},
	})

	handler.ServeStatic(rt, appCtx.FS, opts.StaticDir, http.MethodGet)

	return rt
}
