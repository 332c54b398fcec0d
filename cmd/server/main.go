package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httpapi "checkers-server/internal/api/http"
	"checkers-server/internal/api/ws"
	"checkers-server/internal/config"
	"checkers-server/internal/obslog"
	"checkers-server/internal/room"
	"checkers-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		obslog.Init("info")
		obslog.L().Fatal("config load failed", zap.Error(err))
	}
	obslog.Init(cfg.LogLevel)

	mem := store.NewMemoryStore()
	hub := ws.NewHub()
	reg := room.NewRegistry(mem, cfg, hub)
	hub.AttachRegistry(reg)

	r := httpapi.NewRouter(reg, cfg, hub)

	// Shutdown cancels every room clock before the process exits.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		obslog.L().Info("shutting down")
		reg.Shutdown()
		os.Exit(0)
	}()

	obslog.L().Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		obslog.L().Fatal("server stopped", zap.Error(err))
	}
}
