// Command migrate applies any pending schema migrations and exits.
package main

import (
	"fmt"
	"os"

	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/repository/postgres"
	"github.com/netpulse/netpulse/migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.Files); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	fmt.Println("Migrations applied successfully")
	return nil
}
