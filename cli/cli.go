package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"go.hackfix.me/banyan/app/config"
	actx "go.hackfix.me/banyan/app/context"
)

// CLI is the command line interface of Banyan.
type CLI struct {
	Serve  Serve  `kong:"cmd,help='Start the web server.'"`
	Routes Routes `kong:"cmd,help='List the routes served by the web server.'"`

	Log struct {
		Level slog.Level `enum:"DEBUG,INFO,WARN,ERROR" default:"INFO" help:"Set the app logging level."`
	} `embed:"" prefix:"log-"`
	// NOTE: Configuration is managed independently from the CLI, so
	// kong.ConfigFlag isn't used here.
	ConfigFile string           `kong:"default='${configFile}',help='Path to the Banyan configuration file.'"`
	Version    kong.VersionFlag `kong:"help='Output version and exit.'"`

	kong *kong.Kong
	kctx *kong.Context
}

// New initializes the command-line interface.
func New(configFilePath, version string) (*CLI, error) {
	c := &CLI{}
	kparser, err := kong.New(c,
		kong.Name("banyan"),
		kong.Description("Serve a static web application with a small JSON API."),
		kong.UsageOnError(),
		kong.DefaultEnvars("BANYAN"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"configFile": configFilePath,
			"version":    version,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating the Kong parser: %w", err)
	}

	c.kong = kparser

	return c, nil
}

// Execute starts the command execution. Parse must be called before this method.
func (c *CLI) Execute(appCtx *actx.Context) error {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	c.kong.Stdout = appCtx.Stdout
	c.kong.Stderr = appCtx.Stderr

	//nolint:wrapcheck // This is fine.
	return c.kctx.Run(appCtx)
}

// Parse the given command line arguments. This method must be called before
// Execute.
func (c *CLI) Parse(args []string) error {
	kctx, err := c.kong.Parse(args)
	if err != nil {
		return fmt.Errorf("failed parsing CLI arguments: %w", err)
	}
	c.kctx = kctx

	return nil
}

// Command returns the full path of the executed command.
func (c *CLI) Command() string {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	cmdPath := []string{}
	for _, p := range c.kctx.Path {
		if p.Command != nil {
			cmdPath = append(cmdPath, p.Command.Name)
		}
	}

	return strings.Join(cmdPath, " ")
}

// ApplyConfig applies configuration values to the CLI, but only if they weren't
// already set. A port given on the command line also takes precedence over the
// configured address.
func (c *CLI) ApplyConfig(cfg *config.Config) {
	if c.Serve.Address == "" && c.Serve.Port == 0 && cfg.Server.Address.Valid {
		c.Serve.Address = cfg.Server.Address.V
	}
	if c.Serve.StaticDir == "" && cfg.Server.StaticDir.Valid {
		c.Serve.StaticDir = cfg.Server.StaticDir.V
	}
	if !c.Serve.Debug && cfg.Server.Debug.Valid {
		c.Serve.Debug = cfg.Server.Debug.V
	}
	if c.Serve.ConnectHost == "" && cfg.Server.ConnectHost.Valid {
		c.Serve.ConnectHost = cfg.Server.ConnectHost.V
	}
	if c.Serve.ConnectPort == "" && cfg.Server.ConnectPort.Valid {
		c.Serve.ConnectPort = cfg.Server.ConnectPort.V
	}
}
