package main

import (
	"github.com/spf13/cobra"

	"codeberg.org/colegiospro/server/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "server",
	Short:        "ColegiosPro landing-page backend with live visitor chat",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
	rootCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply the schema on startup")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.FatalErr(err, "server exited")
	}
}
