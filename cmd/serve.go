package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/api"
	azureauth "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/auth"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/session"
)

const shutdownTimeout = 10 * time.Second

func NewServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}

			store := session.NewStore(session.Options{
				Secret: []byte(cfg.SessionSecret),
				TTL:    cfg.SessionTTL,
				Secure: cfg.SecureCookies,
			}, logger)
			defer store.Stop()

			auth := azureauth.NewService(azureauth.Options{
				TenantID:     cfg.TenantID,
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				RedirectURI:  cfg.RedirectURI,
				Scopes:       cfg.Scopes,
			}, store, logger)

			server := api.NewServer(api.Options{
				Store:     store,
				Auth:      auth,
				Factories: api.DefaultFactories(logger),
				Scopes:    cfg.Scopes,
				StaticDir: cfg.StaticDir,
			}, logger)

			httpServer := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.ListenAddr).Str("static_dir", cfg.StaticDir).Msg("dashboard listening")
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (defaults to LISTEN_ADDR)")

	return cmd
}
