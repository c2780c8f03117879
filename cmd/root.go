package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/config"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/utils"
)

const configFlag = "config"

// NewRootCmd assembles the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "azure-costs",
		Short:         "Azure cost analytics dashboard backend and CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String(configFlag, "", "path to an optional YAML config file")

	root.AddCommand(NewServeCmd())
	root.AddCommand(NewCostsCmd())
	root.AddCommand(NewIdleCmd())

	return root
}

// loadConfig reads the config named by --config and builds the logger it describes
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString(configFlag)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return cfg, utils.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr), nil
}
