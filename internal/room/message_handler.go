package room

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/validator"
	"ctchen222/tictactoe-minimax/pkg/proto"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage handles a message from the player. It acts as a dispatcher.
// Bad input is answered with an error message and never ends the room.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		r.sendError(ctx, "malformed message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		r.sendError(ctx, "invalid message")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		r.handleMove(ctx, &message)
	case proto.TypeRematch:
		r.handleRematch(ctx)
	}
}

// handleMove plays the human move and the engine's reply.
func (r *Room) handleMove(ctx context.Context, message *proto.ClientToServerMessage) {
	if len(message.Position) != 2 {
		r.sendError(ctx, "move requires a position")
		return
	}
	if !game.RowColInRange(message.Position[0], message.Position[1]) {
		r.sendError(ctx, "position is off the board")
		return
	}

	ctx, moveSpan := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
		attribute.Int("move.row", message.Position[0]),
		attribute.Int("move.col", message.Position[1]),
	))
	defer moveSpan.End()

	idx := game.Index(message.Position[0], message.Position[1])
	if err := r.game.Move(HumanMark, idx); err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.id", r.Player.ID, "error", err)
		moveSpan.SetAttributes(attribute.Bool("move.valid", false))
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Invalid move")
		r.sendError(ctx, err.Error())
		return
	}
	moveSpan.SetAttributes(attribute.Bool("move.valid", true))
	r.lastMove = idx

	if !r.game.IsOver() {
		if err := r.engineTurn(ctx); err != nil {
			moveSpan.RecordError(err)
			moveSpan.SetStatus(codes.Error, "Engine failed to reply")
			r.sendError(ctx, "engine failed to move")
			return
		}
	}

	if r.game.IsOver() {
		slog.InfoContext(ctx, "game finished", "room.id", r.ID, "result", r.game.Result())
	}
	r.sendUpdate(ctx)
}

// handleRematch starts a new round once the current one is over. The
// engine always accepts and the opening passes to the other side.
func (r *Room) handleRematch(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.handleRematch", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	if !r.game.IsOver() {
		slog.WarnContext(ctx, "Player requested rematch, but game is not over", "player.id", r.Player.ID)
		span.SetStatus(codes.Error, "Rematch requested before game over")
		r.sendError(ctx, "game is not over")
		return
	}

	slog.InfoContext(ctx, "Engine accepts rematch. Resetting game.", "room.id", r.ID)
	r.engineFirst = !r.engineFirst
	r.startRound(ctx)
}
