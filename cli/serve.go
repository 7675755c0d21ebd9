package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	actx "go.hackfix.me/banyan/app/context"
	"go.hackfix.me/banyan/web/server"
)

const (
	defaultPort     = 80
	shutdownTimeout = 10 * time.Second
)

// Serve starts the web server.
type Serve struct {
	Address string `help:"[host]:port to listen on. Overrides --port."`
	Port    uint16 `short:"p" help:"Port to listen on all interfaces. Default: 80."`
	//nolint:lll // Long struct tags are unavoidable.
	StaticDir   string `type:"path" help:"Directory with the static web application files. Default: the static directory inside the working directory."`
	Debug       bool   `short:"d" help:"Handle CORS requests from any origin, and enable debug logging."`
	ConnectHost string `help:"Host web clients should use for connecting to this server."`
	ConnectPort string `help:"Port web clients should use for connecting to this server."`
}

// Run the serve command.
func (c *Serve) Run(appCtx *actx.Context) error {
	srv, err := server.New(appCtx, server.Options{
		Address:     c.listenAddress(),
		StaticDir:   c.StaticDir,
		Debug:       c.Debug,
		ConnectHost: c.ConnectHost,
		ConnectPort: c.ConnectPort,
	})
	if err != nil {
		return err
	}

	// Gracefully shutdown the server if a process signal is received, or the
	// main context is done.
	// See https://dev.to/mokiat/proper-http-shutdown-in-go-3fji
	srvDone := make(chan error, 1)
	go func() {
		srvErr := srv.ListenAndServe()
		appCtx.Logger.Debug("web server shutdown")
		srvDone <- srvErr
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case s := <-sigCh:
		appCtx.Logger.Debug("process received signal", "signal", s)
	case <-appCtx.Ctx.Done():
		appCtx.Logger.Debug("app context is done")
	case srvErr := <-srvDone:
		if srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			return fmt.Errorf("web server error: %w", srvErr)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(appCtx.Ctx), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed shutting down web server: %w", err)
	}

	return nil
}

func (c *Serve) listenAddress() string {
	if c.Address != "" {
		return c.Address
	}
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	return fmt.Sprintf(":%d", port)
}
