package cli

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/banyan/app/config"
)

func TestCLIApplyConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Server: config.Server{
		Address:     sql.Null[string]{V: "127.0.0.1:8080", Valid: true},
		StaticDir:   sql.Null[string]{V: "/srv/www", Valid: true},
		Debug:       sql.Null[bool]{V: true, Valid: true},
		ConnectHost: sql.Null[string]{V: "cfg.local", Valid: true},
		ConnectPort: sql.Null[string]{V: "9000", Valid: true},
	}}

	tests := []struct {
		name     string
		args     []string
		expServe Serve
		expAddr  string
	}{
		{
			name: "ok/config_only",
			args: []string{"serve"},
			expServe: Serve{
				Address: "127.0.0.1:8080", StaticDir: "/srv/www", Debug: true,
				ConnectHost: "cfg.local", ConnectPort: "9000",
			},
			expAddr: "127.0.0.1:8080",
		},
		{
			name: "ok/flags_override",
			args: []string{
				"serve", "--address", ":8443", "--static-dir", "/static",
				"--connect-host", "banyan.local", "--connect-port", "443",
			},
			expServe: Serve{
				Address: ":8443", StaticDir: "/static", Debug: true,
				ConnectHost: "banyan.local", ConnectPort: "443",
			},
			expAddr: ":8443",
		},
		{
			name: "ok/port_overrides_config_address",
			args: []string{"serve", "-p", "8080"},
			expServe: Serve{
				Port: 8080, StaticDir: "/srv/www", Debug: true,
				ConnectHost: "cfg.local", ConnectPort: "9000",
			},
			expAddr: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New("/config.json", "banyan test")
			require.NoError(t, err)
			require.NoError(t, c.Parse(tt.args))
			assert.Equal(t, "serve", c.Command())

			c.ApplyConfig(cfg)
			assert.Equal(t, tt.expServe, c.Serve)
			assert.Equal(t, tt.expAddr, c.Serve.listenAddress())
		})
	}
}

func TestServeListenAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		expAddr string
	}{
		{name: "ok/default_port", args: []string{"serve"}, expAddr: ":80"},
		{name: "ok/port", args: []string{"serve", "-p", "8080"}, expAddr: ":8080"},
		{name: "ok/address_overrides_port", args: []string{"serve", "-p", "8080", "--address", "localhost:3000"}, expAddr: "localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New("/config.json", "banyan test")
			require.NoError(t, err)
			require.NoError(t, c.Parse(tt.args))
			c.ApplyConfig(&config.Config{})
			assert.Equal(t, tt.expAddr, c.Serve.listenAddress())
		})
	}
}
