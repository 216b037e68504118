package main

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/config"
	"ctchen222/tictactoe-minimax/internal/console"
	"ctchen222/tictactoe-minimax/internal/logger"
	"ctchen222/tictactoe-minimax/internal/telemetry"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	engineFirst := flag.Bool("engine-first", false, "let the engine open the game")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	if *engineFirst {
		cfg.EngineFirst = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Game output owns stdout; diagnostics go to stderr.
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry, os.Stderr)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(logger.Options{Level: cfg.Level(), Format: cfg.LogFormat, Output: os.Stderr})

	calculator, err := bot.NewBotMoveCalculator()
	if err != nil {
		log.Fatalf("failed to create move calculator: %v", err)
	}

	session := console.NewSession(os.Stdin, os.Stdout, calculator, cfg.EngineFirst)
	result, err := session.Play(ctx)
	if err != nil {
		if console.IsUnexpectedEOF(err) {
			fmt.Println("\nInput closed before the game ended.")
			return
		}
		slog.Error("game aborted", "error", err)
		return
	}
	slog.Debug("game finished", "result", result)
}
