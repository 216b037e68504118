package hub

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/hub/types"
	"ctchen222/tictactoe-minimax/internal/room"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

// Hub owns every active room: it opens one per registered player and
// forgets it when the player leaves.
type Hub struct {
	rooms          map[string]*room.Room
	register       chan *types.RegistrationRequest
	unregister     chan string
	moveCalculator bot.MoveCalculator
	engineFirst    bool

	mu     sync.RWMutex
	wg     sync.WaitGroup
	done   chan struct{}
	closed sync.Once
}

// NewHub creates a new hub. A single move calculator is shared by all rooms.
func NewHub(calculator bot.MoveCalculator, engineFirst bool) *Hub {
	return &Hub{
		rooms:          make(map[string]*room.Room),
		register:       make(chan *types.RegistrationRequest),
		unregister:     make(chan string),
		moveCalculator: calculator,
		engineFirst:    engineFirst,
		done:           make(chan struct{}),
	}
}

// Run processes registrations until ctx is cancelled, then waits for every
// room to close.
func (h *Hub) Run(ctx context.Context) {
	defer h.wg.Wait()
	defer h.closed.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Hub stopping", "rooms", h.ActiveRooms())
			return

		case req := <-h.register:
			h.registerPlayer(ctx, req)

		case roomID := <-h.unregister:
			h.mu.Lock()
			delete(h.rooms, roomID)
			h.mu.Unlock()
			slog.InfoContext(ctx, "Room closed", "room.id", roomID)
		}
	}
}

// Submit hands req to the hub. It reports false once the hub has stopped.
func (h *Hub) Submit(req *types.RegistrationRequest) bool {
	select {
	case h.register <- req:
		return true
	case <-h.done:
		return false
	}
}

// ActiveRooms returns the number of rooms with a connected player.
func (h *Hub) ActiveRooms() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
