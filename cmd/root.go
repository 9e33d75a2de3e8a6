package cmd

import (
	"fmt"

	"chainrelay/internal/config"
	"chainrelay/pkg/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "chainrelay"

var configPath string

var rootCmd = &cobra.Command{
	Use:          serviceName,
	Short:        "sign, broadcast and reconcile chain transactions",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file (defaults to ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(resubmitCmd)
	rootCmd.AddCommand(dispatchCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func setup() (config.App, *zap.SugaredLogger, error) {
	cfg, err := config.NewApp(configPath)
	if err != nil {
		return config.App{}, nil, fmt.Errorf("create config: %w", err)
	}

	logger := log.NewZapLogger(serviceName, log.ParseLevel(cfg.Server.LogLevel))
	return cfg, logger, nil
}
