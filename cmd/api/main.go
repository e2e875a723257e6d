package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/container"
	"github.com/saulo-duarte/quiz-proctor/internal/router"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := config.Logger

	if err := container.Bootstrap(ctx); err != nil {
		log.WithError(err).Fatal("Startup failed")
	}
	if err := container.Migrate(config.DB); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}

	c := container.New(ctx)
	c.ProctorContainer.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.Conf.GetString("port"),
		Handler:           router.New(c.Router(true)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
