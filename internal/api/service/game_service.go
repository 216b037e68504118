package service

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/repository"
	"fmt"
	"log/slog"
)

// Marks are fixed: the engine maximizes as X, the human minimizes as O.
const (
	EngineMark = game.PlayerX
	HumanMark  = game.PlayerO
)

// Analyzer is implemented by calculators that can expose per-move scores.
type Analyzer interface {
	Analyze(ctx context.Context, board game.Board) (bot.Analysis, error)
	DeleteGame(ctx context.Context, id string) error
}

// GameService defines the game-play use cases behind the HTTP API.
type GameService interface {
	NewGame(ctx context.Context, engineFirst bool) (*repository.GameState, error)
	GetGame(ctx context.Context, id string) (*repository.GameState, error)
	PlayMove(ctx context.Context, id string, position int) (*repository.GameState, error)
	Analyze(ctx context.Context, board game.Board) (bot.Analysis, error)
}

type gameService struct {
	gameRepo   repository.GameRepository
	calculator bot.MoveCalculator
	analyzer   Analyzer
}

// NewGameService creates a new GameService.
func NewGameService(gameRepo repository.GameRepository, calculator bot.MoveCalculator, analyzer Analyzer) GameService {
	return &gameService{
		gameRepo:   gameRepo,
		calculator: calculator,
		analyzer:   analyzer,
	}
}

// NewGame creates a session; when the engine opens it moves immediately.
func (s *gameService) NewGame(ctx context.Context, engineFirst bool) (*repository.GameState, error) {
	first := HumanMark
	if engineFirst {
		first = EngineMark
	}

	state, err := s.gameRepo.Create(ctx, first)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "game created", "game.id", state.ID, "first", first)

	if !engineFirst {
		return state, nil
	}

	return s.gameRepo.Update(ctx, state.ID, func(gs *repository.GameState) error {
		return s.engineTurn(ctx, gs)
	})
}

// GetGame returns the current state of a session.
func (s *gameService) GetGame(ctx context.Context, id string) (*repository.GameState, error) {
	return s.gameRepo.FindByID(ctx, id)
}

// PlayMove applies the human move and, unless that ended the game, the
// engine's reply. Nothing is stored if the human move is rejected.
func (s *gameService) PlayMove(ctx context.Context, id string, position int) (*repository.GameState, error) {
	state, err := s.gameRepo.Update(ctx, id, func(gs *repository.GameState) error {
		if err := gs.Game.Move(HumanMark, position); err != nil {
			return err
		}
		gs.LastMove = position

		if gs.Game.IsOver() {
			return nil
		}
		return s.engineTurn(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	if state.Game.IsOver() {
		slog.InfoContext(ctx, "game finished", "game.id", id, "result", state.Game.Result())
	}
	return state, nil
}

// DeleteGame ends a session and frees it.
func (s *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "game deleted", "game.id", id)
	return nil
}

// Analyze scores every legal move for X on an arbitrary board.
func (s *gameService) Analyze(ctx context.Context, board game.Board) (bot.Analysis, error) {
	return s.analyzer.Analyze(ctx, board)
}

func (s *gameService) engineTurn(ctx context.Context, gs *repository.GameState) error {
	move, err := s.calculator.CalculateNextMove(ctx, gs.Game.Board)
	if err != nil {
		return fmt.Errorf("engine failed to move: %w", err)
	}
	if err := gs.Game.Move(EngineMark, move); err != nil {
		return fmt.Errorf("engine produced an illegal move %d: %w", move, err)
	}
	gs.LastMove = move
	return nil
}
