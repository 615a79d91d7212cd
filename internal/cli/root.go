// Package cli provides storectl, the operator command line for the storefront.
package cli

import (
	"fmt"
	"io"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command needs once flags are parsed
type app struct {
	out      io.Writer
	envFiles []string
	logLevel string
	cfg      *config.Config
	log      *zap.Logger
}

// loadConfig reads configuration from .env, the --env-file files and the
// environment. Validation is left to the commands.
func (a *app) loadConfig() error {
	cfg, err := config.Read(a.envFiles...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewWithSink("development", a.logLevel, zapErrorSink)
	return nil
}

// openStore connects to the store named by the configuration
func (a *app) openStore() (*database.Service, error) {
	if err := a.cfg.ValidateDatabase(); err != nil {
		return nil, err
	}
	return database.New(a.cfg.Database)
}

// NewRootCommand builds the storectl command tree writing results to out
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Operate the storefront: migrations, catalog seeding, orders and order links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "extra env files to load")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level")

	root.AddCommand(
		newMigrateCommand(a),
		newSeedCommand(a),
		newOrdersCommand(a),
		newLinkCommand(a),
	)

	return root
}

// Execute runs storectl with the process arguments
func Execute(out io.Writer) error {
	return NewRootCommand(out).Execute()
}

func printf(a *app, format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
