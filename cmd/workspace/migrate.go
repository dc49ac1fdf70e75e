package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Leyinc1/manuelbest/internal/config"
	"github.com/Leyinc1/manuelbest/internal/lib/logger"
	"github.com/Leyinc1/manuelbest/internal/lib/migrator"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long:  "Apply every pending migration by default.\nWith --steps N only the next N are applied.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(mg *migrator.Migrator, steps int) error {
			return mg.Up(steps)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long:  "Roll back every migration by default.\nWith --steps N only the last N are rolled back.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(mg *migrator.Migrator, steps int) error {
			return mg.Down(steps)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(mg *migrator.Migrator, _ int) error {
			version, dirty, err := mg.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		})
	},
}

func withMigrator(cmd *cobra.Command, fn func(mg *migrator.Migrator, steps int) error) error {
	steps, err := cmd.Flags().GetInt("steps")
	if err != nil {
		steps = 0
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mg, err := migrator.New(cfg.Postgres, logger.New(cfg.Env))
	if err != nil {
		return err
	}
	defer mg.Close()

	return fn(mg, steps)
}

func init() {
	migrateUpCmd.Flags().IntP("steps", "s", 0, "Number of migrations to apply")
	migrateDownCmd.Flags().IntP("steps", "s", 0, "Number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
