package main

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/bookmark-api/internal/config"
	"github.com/redmonkez12/bookmark-api/internal/database"
)

// openDatabase loads the configuration and connects to the configured
// database. SQLite databases get their schema created on the way.
func openDatabase(ctx context.Context) (*config.Config, *bun.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.Driver == config.DriverSQLite {
		if err := database.CreateSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return cfg, db, nil
}
