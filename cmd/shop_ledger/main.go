package main

import (
	"log/slog"
	"os"

	"github.com/hossamSharif/shop_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

// @title Shop Ledger API
// @version 1.0
// @description Multi-shop bookkeeping: chart of accounts, transactions, financial years and profit reports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shop_ledger",
		Short: "Bookkeeping backend for a group of shops",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newContinuityCommand(),
		newCreateAdminCommand(),
	)
	return rootCmd
}

// bootstrap loads configuration and installs the process-wide structured logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
