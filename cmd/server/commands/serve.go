package commands

import (
	"fmt"

	"taskboard/internal/config"
	"taskboard/internal/migrations"
	"taskboard/internal/server"

	"github.com/spf13/cobra"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and event stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.ConfigureLogging()

		if serveMigrate {
			if err := migrations.Up(cfg.MigrationURL()); err != nil {
				return err
			}
		}

		s, err := server.Init(cfg)
		if err != nil {
			return fmt.Errorf("server initialization failed: %w", err)
		}
		return s.Run()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}
