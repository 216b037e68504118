package room

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startRound resets the board, lets the engine open when it is its turn
// and pushes the new state. Callers hold r.mu.
func (r *Room) startRound(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.startRound", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Bool("round.engine_first", r.engineFirst),
	))
	defer span.End()

	first := HumanMark
	if r.engineFirst {
		first = EngineMark
	}
	g, err := game.NewGame(first)
	if err != nil {
		// first is always a valid mark
		panic(err)
	}
	r.game = g
	r.lastMove = -1

	if r.engineFirst {
		if err := r.engineTurn(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Engine failed to open")
			r.sendError(ctx, "engine failed to move")
			return
		}
	}
	r.sendUpdate(ctx)
}

// engineTurn asks the calculator for X's reply and plays it. Callers hold r.mu.
func (r *Room) engineTurn(ctx context.Context) error {
	move, err := r.moveCalculator.CalculateNextMove(ctx, r.game.Board)
	if err != nil {
		slog.ErrorContext(ctx, "engine failed to calculate a move", "room.id", r.ID, "error", err)
		return err
	}
	if err := r.game.Move(EngineMark, move); err != nil {
		slog.ErrorContext(ctx, "engine produced an illegal move", "room.id", r.ID, "move", move, "error", err)
		return fmt.Errorf("engine produced an illegal move %d: %w", move, err)
	}
	r.lastMove = move
	slog.DebugContext(ctx, "engine moved", "room.id", r.ID, "move", move)
	return nil
}
