package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/account-service/internal/infrastructure/config"
	"github.com/99minutos/account-service/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:          "accounts",
	Short:        "User account service",
	SilenceUsage: true,
}

// bootstrap loads configuration and initialises the process logger. Every
// subcommand starts here.
func bootstrap(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "account-service",
	})
	return cfg, log, nil
}
