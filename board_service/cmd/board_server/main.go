package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/internal/board_server"
	"jobboard/board_service/internal/core"
)

func main() {
	// Создаем корневой контекст
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализируем зависимости
	deps, err := core.InitDependencies(ctx)
	if err != nil {
		slog.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	// Создаем HTTP-сервер
	server, err := board_server.NewBoardServer(ctx, deps.Config, deps.Handler, deps.Tokens, deps.Cookies)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		_ = deps.Close()
		os.Exit(1)
	}

	// канал системных сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server failed", "error", err)
	}

	// Graceful shutdown: ждём текущие запросы
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, deps.Config.ServerConf.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during server shutdown", "error", err)
	}

	if err := deps.Close(); err != nil {
		slog.Error("error during resources closing", "error", err)
	}

	slog.Info("board server stopped", "breaker", deps.Breaker.GetStats().State.String())
}
