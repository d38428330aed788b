package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"comics/anonchat"
	"comics/assistant"
	"comics/catalog"
	"comics/config"
	"comics/handlers"
	"comics/middleware"
	"comics/reading"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, path, err := loadCatalog()
	if err != nil {
		return err
	}
	for _, issue := range store.Get().Validate() {
		logger.Warn("catalog issue", zap.String("issue", issue.String()))
	}
	if path != "" {
		w, err := catalog.NewWatcher(path, store, logger.Named("catalog"))
		if err != nil {
			logger.Warn("catalog reload disabled", zap.Error(err))
		} else {
			w.Start(ctx)
			defer w.Stop()
		}
	}

	b, err := openBackends(ctx, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	clk := clock.New()
	anon := anonchat.NewSessions(clk, logger.Named("anonchat"))
	go anon.Run(ctx)
	h := &handlers.Handler{
		Catalog:    store,
		Auth:       b.auth,
		Gate:       reading.NewGate(b.reads, store, config.GetReadLimit(), logger),
		Assistant:  assistant.NewRouter(store, geminiFallback(ctx, store), logger),
		Transcript: b.transcript,
		Anon:       anon,
		Blobs:      b.blobs,
		Presence:   b.presence,
		Clock:      clk,
		Log:        logger,
	}

	origins := middleware.ParseOrigins(config.GetAllowedOrigins())
	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           middleware.EnableCORS(origins, middleware.LogRequests(logger.Named("http"), h.Routes())),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", "http://localhost"+srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	anon.CloseAll(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
