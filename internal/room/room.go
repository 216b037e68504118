package room

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/player"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Marks are fixed for a room: the engine always plays X.
const (
	EngineMark = game.PlayerX
	HumanMark  = game.PlayerO
)

var heartbeatInterval = 10 * time.Second
var tracer = otel.Tracer("room")

// Room is one human player facing the engine over a websocket.
type Room struct {
	ID             string
	Player         *player.Player
	moveCalculator bot.MoveCalculator

	mu          sync.Mutex
	game        *game.Game
	lastMove    int
	engineFirst bool

	writeMu sync.Mutex
}

// NewRoom creates a room. engineFirst decides who opens the first round;
// every rematch hands the opening to the other side.
func NewRoom(id string, p *player.Player, calculator bot.MoveCalculator, engineFirst bool) *Room {
	return &Room{
		ID:             id,
		Player:         p,
		moveCalculator: calculator,
		engineFirst:    engineFirst,
		lastMove:       -1,
	}
}

// Run assigns the player's mark, starts the first round and processes
// messages until the connection fails or ctx is cancelled. The connection
// is closed on return.
func (r *Room) Run(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.Run", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.id", r.Player.ID),
	))
	defer span.End()

	done := make(chan struct{})
	defer close(done)
	go r.heartbeat(ctx, done)

	r.sendAssignment(ctx)

	r.mu.Lock()
	r.startRound(ctx)
	r.mu.Unlock()

	r.ReadPump(ctx)
}

// ReadPump reads messages from the player and hands them to HandleMessage.
func (r *Room) ReadPump(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.ReadPump", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	defer func() {
		if err := r.Player.Conn.Close(); err != nil {
			slog.DebugContext(ctx, "closing player connection", "player.id", r.Player.ID, "error", err)
		}
		slog.InfoContext(ctx, "Player disconnected", "player.id", r.Player.ID, "room.id", r.ID)
	}()

	for {
		_, msg, err := r.Player.Conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				slog.WarnContext(ctx, "Player connection error", "player.id", r.Player.ID, "room.id", r.ID, "error", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, "Player connection error")
			}
			return
		}
		r.HandleMessage(ctx, msg)
	}
}

// heartbeat pings the player until done is closed. Cancelling ctx closes
// the connection, which unblocks ReadPump.
func (r *Room) heartbeat(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			r.Player.Conn.Close()
			return
		case <-ticker.C:
			if err := r.write(websocket.PingMessage, nil); err != nil {
				slog.WarnContext(ctx, "Failed to send ping to player", "player.id", r.Player.ID, "error", err)
			}
		}
	}
}
