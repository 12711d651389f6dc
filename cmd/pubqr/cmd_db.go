package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/database/seeders"
	"github.com/shashiranjanraj/pubqr/pkg/database"
	"github.com/shashiranjanraj/pubqr/pkg/migration"
)

// bootDB loads config and opens the sql connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	if d := config.StoreDriver(); d != "sql" {
		return fmt.Errorf("migrations need STORE_DRIVER=sql (current: %s)", d)
	}
	return database.Connect()
}

// pubqr migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		n, err := migration.New(database.DB, cmd.OutOrStdout()).Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
		return nil
	},
}

// pubqr migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		return migration.New(database.DB, cmd.OutOrStdout()).Rollback()
	},
}

// pubqr migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB, cmd.OutOrStdout()).Status()
	},
}

// pubqr seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo menu and orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := config.Load(); err != nil {
			return err
		}
		if d := config.StoreDriver(); d == "memory" {
			return fmt.Errorf("seed needs a persistent store (STORE_DRIVER=mongo or sql); the memory store is seeded by serve on boot")
		}
		store, err := repositories.Open(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)

		if store.Driver == "sql" {
			if _, err := migration.New(database.DB, cmd.OutOrStdout()).Run(); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(ctx, store, cmd.OutOrStdout())
	},
}
