package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-news-api/internal/config"
	httpapi "github.com/tbourn/go-news-api/internal/http"
	"github.com/tbourn/go-news-api/internal/observability"
	"github.com/tbourn/go-news-api/internal/seed"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `serve opens (and migrates) the store, optionally seeds it, and serves the
API until SIGINT or SIGTERM. In-flight requests get SHUTDOWN_TIMEOUT to
finish before the store is closed.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return serve(ctx, cfg, ln)
}

// serve runs the API on ln until ctx is done, then drains and releases
// everything it opened. ln is closed on return.
func serve(ctx context.Context, cfg config.Config, ln net.Listener) error {
	gin.SetMode(cfg.Server.GinMode)

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version())
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := openStore(cfg.Store.Path, cfg.OTEL.Enabled)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer closeStore(db)

	if cfg.Store.SeedOnStart {
		if err := seed.RunDataset(ctx, db, cfg.Store.SeedDataset); err != nil {
			_ = ln.Close()
			return err
		}
		log.Info().Str("dataset", cfg.Store.SeedDataset).Msg("store seeded on start")
	}

	srv := &http.Server{
		Handler:           httpapi.NewRouter(db, cfg),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("base_path", cfg.API.BasePath).Msg("http server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.Server.ShutdownTimeout).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
