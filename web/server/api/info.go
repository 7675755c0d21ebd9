package api

import "go.hackfix.me/banyan/web/server/handler"

// Info is the server information reported to web clients.
type Info struct {
	Version string
	// ConnectHost and ConnectPort identify the Banyan server the web
	// application should connect to. They're empty if not configured.
	ConnectHost string
	ConnectPort string
}

// Handler returns a handler that responds with the server information.
func (i Info) Handler() handler.Handler {
	return func(*handler.Request) (handler.Response, error) {
		return handler.OKResult(map[string]any{
			"version":      i.Version,
			"connect_host": i.ConnectHost,
			"connect_port": i.ConnectPort,
		}), nil
	}
}
