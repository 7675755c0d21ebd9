package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mandelsoft/vfs/pkg/memoryfs"

	"go.hackfix.me/banyan/app/config"
	actx "go.hackfix.me/banyan/app/context"
	"go.hackfix.me/banyan/cli"
)

// App is the application.
type App struct {
	name string
	ctx  *actx.Context
	cli  *cli.CLI
	// the logging level is set via the CLI, if the app was initialized with the
	// WithLogger option.
	logLevel *slog.LevelVar
}

// New initializes a new application. configPath is the default path of the
// configuration file, which can be overridden via the CLI.
func New(name, configPath string, opts ...Option) (*App, error) {
	defaultCtx := &actx.Context{
		Ctx:     context.Background(),
		FS:      memoryfs.New(),
		Logger:  slog.New(slog.DiscardHandler),
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		Version: actx.GetVersion(),
	}
	app := &App{name: name, ctx: defaultCtx}

	for _, opt := range opts {
		opt(app)
	}

	ver := fmt.Sprintf("%s %s", app.name, app.ctx.Version.String())
	var err error
	app.cli, err = cli.New(configPath, ver)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run initializes the application environment and starts execution of the
// application.
func (app *App) Run(args []string) error {
	if err := app.cli.Parse(args); err != nil {
		return err
	}

	if err := app.loadConfig(); err != nil {
		return err
	}

	if app.logLevel != nil {
		level := app.cli.Log.Level
		if app.cli.Command() == "serve" && app.cli.Serve.Debug {
			level = min(level, slog.LevelDebug)
		}
		app.logLevel.Set(level)
		slog.SetLogLoggerLevel(level)
	}

	if err := app.cli.Execute(app.ctx); err != nil {
		return err
	}

	return nil
}

// loadConfig reads the configuration file, and applies its values to the CLI.
// Values set via CLI flags or environment variables take precedence.
func (app *App) loadConfig() error {
	cfg := config.NewConfig(app.ctx.FS, app.cli.ConfigFile)
	if err := cfg.Load(); err != nil {
		return err
	}

	workDir, err := app.ctx.FS.Getwd()
	if err != nil {
		return fmt.Errorf("failed getting the working directory: %w", err)
	}
	cfg.SetDefaults(workDir)
	app.cli.ApplyConfig(cfg)

	return nil
}
