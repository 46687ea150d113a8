package main

import (
	"context"

	"kitchenmate/internal/recipes"
)

// SeedCmd migrates the database and loads the built-in recipes
type SeedCmd struct{}

func (cmd *SeedCmd) Run(app *appContext) error {
	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.SeedRecipes(context.Background(), recipes.DefaultCatalog())
	if err != nil {
		return err
	}
	app.logger.Info("seed complete", "added", added, "driver", app.cfg.Database.Driver)
	return nil
}
