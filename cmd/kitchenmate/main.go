package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"kitchenmate/internal/config"
	"kitchenmate/internal/database"
	"kitchenmate/internal/logger"
)

var CLI struct {
	Config   string `help:"Path to configuration file." default:"configs/config.yaml" type:"path"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)."`

	Serve ServeCmd `cmd:"" help:"Run the HTTP API and metrics servers." default:"1"`
	Seed  SeedCmd  `cmd:"" help:"Create tables and load the built-in recipes."`
	Week  WeekCmd  `cmd:"" help:"Print the demo week's nutrition and shopping list."`
	Token TokenCmd `cmd:"" help:"Issue an API token for a user."`
	Shop  ShopCmd  `cmd:"" help:"Check off a plan's shopping list against a running server."`
}

// appContext is passed to every command's Run method
type appContext struct {
	cfg    *config.Config
	logger *log.Logger
}

func (a *appContext) openStore() (*database.Store, error) {
	store, err := database.Open(a.cfg.Database.Driver, a.cfg.Database.DSN, a.logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("kitchenmate"),
		kong.Description("Kitchen inventory, recipes and weekly meal planning"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}

	l, err := logger.New(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(&appContext{cfg: cfg, logger: l}); err != nil {
		l.Error("command failed", "command", ctx.Command(), "err", err)
		os.Exit(1)
	}
}
