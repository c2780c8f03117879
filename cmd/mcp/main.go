package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/cmd/mcp/tools"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/api"
	azureconfig "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/config"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	cfgService, err := azureconfig.NewService(azureconfig.Options{
		SubscriptionID: cfg.SubscriptionID,
		TenantID:       cfg.TenantID,
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Azure credential error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"azure-cost-analytics-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterAzureTools(s, tools.Deps{
		Credential:     cfgService.GetCredential(),
		SubscriptionID: cfgService.GetSubscriptionID(),
		Factories:      api.DefaultFactories(logger),
		Logger:         logger,
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
