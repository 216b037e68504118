package room

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/pkg/proto"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Send marshals message and writes it to the player.
func (r *Room) Send(ctx context.Context, message any, messageType string) {
	_, span := tracer.Start(ctx, "room.Send", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("message.type", messageType),
	))
	defer span.End()

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling message")
		return
	}

	if err := r.write(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error writing message to player")
	}
}

func (r *Room) write(messageType int, data []byte) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.Player.Conn.WriteMessage(messageType, data)
}

func (r *Room) sendAssignment(ctx context.Context) {
	r.Send(ctx, &proto.PlayerAssignmentMessage{
		Type:     proto.TypeAssignment,
		PlayerID: r.Player.ID,
		Mark:     HumanMark,
	}, proto.TypeAssignment)
}

func (r *Room) sendError(ctx context.Context, reason string) {
	r.Send(ctx, &proto.ServerToClientMessage{
		Type:   proto.TypeError,
		Reason: reason,
	}, proto.TypeError)
}

// sendUpdate pushes the current board. Callers hold r.mu.
func (r *Room) sendUpdate(ctx context.Context) {
	msg := &proto.ServerToClientMessage{
		Type:   proto.TypeUpdate,
		Board:  r.game.Board.Grid(),
		Next:   r.game.CurrentTurn,
		Winner: r.game.Winner,
		IsDraw: r.game.IsDraw,
	}
	if game.InRange(r.lastMove) {
		row, col := game.RowCol(r.lastMove)
		msg.LastMove = []int{row, col}
	}
	r.Send(ctx, msg, proto.TypeUpdate)
}
