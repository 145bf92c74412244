package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fxadmin-service/internal/bootstrap"
	infraconfig "fxadmin-service/internal/infrastructure/config"
	"fxadmin-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func init() { _ = godotenv.Load() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		logx.L().Fatal("bootstrap api", zap.Error(err))
	}
	defer cleanup()
	logger := app.Logger

	server := &http.Server{
		Addr:              ":" + app.Config.Port,
		Handler:           app.Handler,
		ReadHeaderTimeout: infraconfig.DefaultReadTimeout,
		ReadTimeout:       infraconfig.DefaultReadTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started",
			zap.String("addr", server.Addr),
			zap.String("storage", app.Config.Storage),
			zap.String("reference_tz", app.Config.ReferenceTZ),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
	logger.Info("server stopped")
}
