package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/config"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/utils"
)

// LoadConfig reads configuration from MCP_CONFIG (optional YAML) and the environment
func LoadConfig() (*config.Config, error) {
	return config.Load(os.Getenv("MCP_CONFIG"))
}

// newLogger writes JSON to stderr; stdout carries the MCP protocol
func newLogger(cfg *config.Config) zerolog.Logger {
	return utils.NewLogger(cfg.LogLevel, "json", os.Stderr)
}
