package cli

import (
	"storefront/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the store schema",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")

	migrationsDir := func() string {
		if dir != "" {
			return dir
		}
		return a.cfg.Server.MigrationsDir
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
				return database.RunMigrations(store.DB(), migrationsDir(), a.log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
				return database.RollbackMigration(store.DB(), migrationsDir(), a.log)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
				return database.GetMigrationStatus(store.DB(), migrationsDir())
			},
		},
	)

	return cmd
}
