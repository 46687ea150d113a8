package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kitchenmate/internal/api"
	"kitchenmate/internal/monitoring"
	"kitchenmate/internal/planner"
	"kitchenmate/internal/recipes"
)

// ServeCmd runs the API server
type ServeCmd struct {
	Port        int `help:"API server port, overrides the configuration."`
	MetricsPort int `help:"Metrics server port, overrides the configuration."`
}

func (cmd *ServeCmd) Run(app *appContext) error {
	cfg := app.cfg
	if cmd.Port != 0 {
		cfg.Server.Port = cmd.Port
	}
	if cmd.MetricsPort != 0 {
		cfg.MetricsConfig.Port = cmd.MetricsPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Database.Seed {
		added, err := store.SeedRecipes(ctx, recipes.DefaultCatalog())
		if err != nil {
			return err
		}
		if added > 0 {
			app.logger.Info("seeded recipes", "count", added)
		}
	}

	var suggester recipes.Suggester = recipes.NewMatchSuggester(store)
	if cfg.LLM.APIKey != "" {
		model, err := recipes.NewModel(recipes.ModelConfig{
			Provider:   cfg.LLM.Provider,
			Model:      cfg.LLM.Model,
			APIKey:     cfg.LLM.APIKey,
			BaseURL:    cfg.LLM.BaseURL,
			APIVersion: cfg.LLM.APIVersion,
		})
		if err != nil {
			return err
		}
		suggester = recipes.NewLLMSuggester(suggester, model, app.logger)
		app.logger.Info("llm suggestion ranking enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	}

	metrics := monitoring.NewMetricsCollector(monitoring.NewMonitor())
	hub := api.NewHub(app.logger)
	defer hub.Close()
	plans := planner.NewService(store, store, app.logger,
		planner.WithNotifier(hub),
		planner.WithRecorder(metrics),
	)

	srv := api.NewServer(api.Options{
		Store:     store,
		Plans:     plans,
		Suggester: suggester,
		Hub:       hub,
		Metrics:   metrics,
		Logger:    app.logger,
		JWTSecret: cfg.Auth.JWTSecret,
	})
	if cfg.Auth.JWTSecret == "" {
		app.logger.Warn("no jwt secret configured, all requests act as the default user")
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}

	var metricsServer *http.Server
	if cfg.MetricsConfig.Enabled {
		metricsRouter := gin.New()
		metricsRouter.GET(cfg.MetricsConfig.Path, gin.WrapH(metrics.Handler()))
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.MetricsConfig.Port),
			Handler: metricsRouter,
		}
		go func() {
			app.logger.Info("starting metrics server", "port", cfg.MetricsConfig.Port)
			if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
				app.logger.Error("metrics server error", "err", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting API server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("API server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("metrics server shutdown error", "err", err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}
	return nil
}
