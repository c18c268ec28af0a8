package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/kailas-cloud/duodex/internal/transport/chi"
	articleuc "github.com/kailas-cloud/duodex/internal/usecase/article"
	healthuc "github.com/kailas-cloud/duodex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/duodex/internal/usecase/search"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is read from config/<env>.yaml after loading the optional .env
file. With the redis driver the database is dialed on the first request; with
the memory driver the seed file named in the config is loaded at startup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides http.port)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, port int) error {
	a, err := newApp(flags)
	if err != nil {
		return err
	}
	defer a.close()

	if port > 0 {
		a.cfg.HTTP.Port = port
	}
	a.logStartup("serve")

	if err := a.seedMemory(ctx); err != nil {
		return err
	}

	searchSvc := searchuc.New(a.repo, searchuc.Config{
		MaxCandidates:      a.cfg.Search.MaxCandidates,
		NativeRelevance:    a.cfg.Search.NativeRelevance,
		RecencyDecayPerDay: a.cfg.Search.RecencyDecayPerDay,
	})
	articleSvc := articleuc.New(a.repo)
	healthSvc := healthuc.New(a.pinger, a.repo)

	server := chiTransport.NewServer(searchSvc, articleSvc, healthSvc, chiTransport.Paging{
		DefaultPageSize: a.cfg.Search.DefaultPageSize,
		MaxPageSize:     a.cfg.Search.MaxPageSize,
	}, a.logger)

	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		CORS: chiTransport.CORS{
			AllowedOrigins:   a.cfg.CORS.AllowedOrigins,
			AllowedMethods:   a.cfg.CORS.AllowedMethods,
			AllowedHeaders:   a.cfg.CORS.AllowedHeaders,
			AllowCredentials: a.cfg.CORS.AllowCredentials,
			MaxAge:           a.cfg.CORS.MaxAgeSec,
		},
		RequestTimeout: time.Duration(a.cfg.HTTP.RequestTimeoutSec) * time.Second,
	}, a.logger)

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-sigCtx.Done():
		a.logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info("Server stopped gracefully")
	return nil
}
