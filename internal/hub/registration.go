package hub

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/hub/types"
	"ctchen222/tictactoe-minimax/internal/room"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// registerPlayer opens a room for the player and runs it in the
// background. The room is unregistered when its connection drops.
func (h *Hub) registerPlayer(ctx context.Context, req *types.RegistrationRequest) {
	reqCtx := req.Ctx
	if reqCtx == nil {
		reqCtx = ctx
	}
	_, span := tracer.Start(reqCtx, "hub.registerPlayer", trace.WithAttributes(
		attribute.String("player.id", req.Player.ID),
	))
	defer span.End()

	roomID := uuid.New().String()
	span.SetAttributes(attribute.String("room.id", roomID))

	newRoom := room.NewRoom(roomID, req.Player, h.moveCalculator, h.engineFirst)

	h.mu.Lock()
	h.rooms[roomID] = newRoom
	h.mu.Unlock()
	slog.InfoContext(ctx, "Room created", "room.id", roomID, "player.id", req.Player.ID)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		newRoom.Run(ctx)

		select {
		case h.unregister <- roomID:
		case <-h.done:
		}
	}()
}
