package config

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Config represents the application configuration, read from a JSON file on a
// filesystem.
type Config struct {
	Server Server

	fs   vfs.FileSystem
	path string
}

// NewConfig creates a new Config instance with the specified filesystem
// and configuration file path.
func NewConfig(fs vfs.FileSystem, path string) *Config {
	return &Config{fs: fs, path: path}
}

// Load reads and parses the configuration file from the filesystem.
// If the file doesn't exist, it initializes with an empty configuration.
func (c *Config) Load() error {
	configJSON, err := vfs.ReadFile(c.fs, c.path)
	if err != nil && !vfs.IsErrNotExist(err) {
		return fmt.Errorf("failed reading configuration file: %w", err)
	}

	// Ensure that unmarshalling JSON doesn't fail if the file doesn't exist or is empty.
	if len(configJSON) == 0 {
		configJSON = []byte("{}")
	}

	if err = json.Unmarshal(configJSON, c); err != nil {
		return fmt.Errorf("failed parsing configuration file: %w", err)
	}

	return nil
}

// Path returns the filesystem path where the configuration is stored.
func (c *Config) Path() string {
	return c.path
}

// Server defines configuration options specific to the HTTP server.
type Server struct {
	// Address is the network address in [host]:port format the server will listen on.
	Address sql.Null[string] `json:"address"`
	// StaticDir is the directory with the static web application files.
	StaticDir sql.Null[string] `json:"static_dir"`
	// Debug enables handling CORS requests and debug logging.
	Debug sql.Null[bool] `json:"debug"`
	// ConnectHost is the host web clients use for connecting to the Banyan server.
	ConnectHost sql.Null[string] `json:"connect_host"`
	// ConnectPort is the port web clients use for connecting to the Banyan server.
	ConnectPort sql.Null[string] `json:"connect_port"`
}

type cfgWrapper struct {
	Server srvCfgWrapper `json:"server"`
}
type srvCfgWrapper struct {
	Address     string `json:"address,omitempty"`
	StaticDir   string `json:"static_dir,omitempty"`
	Debug       *bool  `json:"debug,omitempty"`
	ConnectHost string `json:"connect_host,omitempty"`
	ConnectPort string `json:"connect_port,omitempty"`
}

// MarshalJSON implements custom JSON marshaling to convert sql.Null values
// to their underlying types, omitting invalid/null fields from the output.
func (c Config) MarshalJSON() ([]byte, error) {
	w := cfgWrapper{}

	if c.Server.Address.Valid {
		w.Server.Address = c.Server.Address.V
	}
	if c.Server.StaticDir.Valid {
		w.Server.StaticDir = c.Server.StaticDir.V
	}
	if c.Server.Debug.Valid {
		w.Server.Debug = &c.Server.Debug.V
	}
	if c.Server.ConnectHost.Valid {
		w.Server.ConnectHost = c.Server.ConnectHost.V
	}
	if c.Server.ConnectPort.Valid {
		w.Server.ConnectPort = c.Server.ConnectPort.V
	}

	//nolint:wrapcheck // This is fine.
	return json.Marshal(w)
}

// UnmarshalJSON implements custom JSON unmarshaling to convert plain values
// into sql.Null types.
func (c *Config) UnmarshalJSON(data []byte) error {
	var w cfgWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		//nolint:wrapcheck // This is fine.
		return err
	}

	if w.Server.Address != "" {
		c.Server.Address = sql.Null[string]{V: w.Server.Address, Valid: true}
	}
	if w.Server.StaticDir != "" {
		c.Server.StaticDir = sql.Null[string]{V: w.Server.StaticDir, Valid: true}
	}
	if w.Server.Debug != nil {
		c.Server.Debug = sql.Null[bool]{V: *w.Server.Debug, Valid: true}
	}
	if w.Server.ConnectHost != "" {
		c.Server.ConnectHost = sql.Null[string]{V: w.Server.ConnectHost, Valid: true}
	}
	if w.Server.ConnectPort != "" {
		c.Server.ConnectPort = sql.Null[string]{V: w.Server.ConnectPort, Valid: true}
	}

	return nil
}

// SetDefaults sets default configuration values if they weren't set already.
// The static directory defaults to the "static" directory inside workDir.
func (c *Config) SetDefaults(workDir string) {
	if !c.Server.StaticDir.Valid {
		c.Server.StaticDir = sql.Null[string]{V: vfs.Join(c.fs, workDir, "static"), Valid: true}
	}
	if !c.Server.Debug.Valid {
		c.Server.Debug = sql.Null[bool]{V: false, Valid: true}
	}
}
