package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jpmhone/folio/pkg/clientip"
	"github.com/jpmhone/folio/pkg/config"
	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/requestid"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio and blog backend",
	Long: `folio serves the newsletter, unsubscribe, comment, crawler and
sitemap endpoints of the portfolio site and runs its maintenance tasks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if len(envFiles) > 0 {
			return config.LoadEnv(envFiles...)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (defaults to .env when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sitemapCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// newLogger builds the process logger from LOG_* and APP_* variables.
func newLogger() (*slog.Logger, error) {
	var cfg logger.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	log, err := logger.NewFromConfig(cfg,
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	if err != nil {
		return nil, err
	}
	logger.SetAsDefault(log)
	return log, nil
}
