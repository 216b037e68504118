package main

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/api/controller"
	"ctchen222/tictactoe-minimax/internal/api/service"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/config"
	"ctchen222/tictactoe-minimax/internal/hub"
	"ctchen222/tictactoe-minimax/internal/logger"
	"ctchen222/tictactoe-minimax/internal/repository"
	"ctchen222/tictactoe-minimax/internal/server"
	"ctchen222/tictactoe-minimax/internal/telemetry"
	"ctchen222/tictactoe-minimax/internal/validator"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry, os.Stdout)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(logger.Options{Level: cfg.Level(), Format: cfg.LogFormat, Output: os.Stderr})

	if err := validator.RegisterGinValidations(); err != nil {
		log.Fatalf("failed to register validations: %v", err)
	}

	// Create the engine
	calculator, err := bot.NewBotMoveCalculator()
	if err != nil {
		log.Fatalf("failed to create move calculator: %v", err)
	}

	gameRepo := repository.NewGameRepository()
	gameService := service.NewGameService(gameRepo, calculator, calculator)
	gameController := controller.NewGameController(gameService)

	// Create hub
	h := hub.NewHub(calculator, cfg.EngineFirst)
	hubStopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(hubStopped)
	}()

	// Create the Gin-based server
	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(h, gameController)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	<-hubStopped

	slog.Info("Server exiting")
}
