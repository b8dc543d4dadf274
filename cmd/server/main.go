package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jemis-lakhani/coingame-backend/internal/config"
	"github.com/jemis-lakhani/coingame-backend/internal/httpapi"
	"github.com/jemis-lakhani/coingame-backend/internal/hub"
	"github.com/jemis-lakhani/coingame-backend/internal/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogFile)
	defer log.Sync()

	ctx := context.Background()
	h := hub.NewHub(ctx, log)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, cfg, log)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	h.Inbox() <- hub.ShutdownHub{}

	shutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
}
