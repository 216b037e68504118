package repository

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("repository.game")

var ErrGameNotFound = errors.New("game not found")

// GameState is a stored session: the game plus bookkeeping for clients.
type GameState struct {
	ID        string
	Game      game.Game
	LastMove  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GameRepository defines the interface for game session operations.
type GameRepository interface {
	Create(ctx context.Context, first game.PlayerMark) (*GameState, error)
	FindByID(ctx context.Context, id string) (*GameState, error)
	Update(ctx context.Context, id string, fn func(*GameState) error) (*GameState, error)
	Delete(ctx context.Context, id string) error
}

// memoryGameRepository keeps sessions for the lifetime of the process.
type memoryGameRepository struct {
	mu    sync.Mutex
	games map[string]*GameState
	now   func() time.Time
}

// NewGameRepository creates an in-memory GameRepository.
func NewGameRepository() GameRepository {
	return &memoryGameRepository{
		games: make(map[string]*GameState),
		now:   time.Now,
	}
}

// Create starts a new game where first moves first.
func (r *memoryGameRepository) Create(ctx context.Context, first game.PlayerMark) (*GameState, error) {
	_, span := tracer.Start(ctx, "GameRepository.Create")
	defer span.End()

	g, err := game.NewGame(first)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	now := r.now()
	state := &GameState{
		ID:        uuid.New().String(),
		Game:      *g,
		LastMove:  -1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	span.SetAttributes(attribute.String("game.id", state.ID))

	r.mu.Lock()
	r.games[state.ID] = state
	r.mu.Unlock()

	snapshot := *state
	return &snapshot, nil
}

// FindByID returns a snapshot of the stored game.
func (r *memoryGameRepository) FindByID(ctx context.Context, id string) (*GameState, error) {
	_, span := tracer.Start(ctx, "GameRepository.FindByID")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	snapshot := *state
	return &snapshot, nil
}

// Update runs fn on a copy of the game and stores the copy only if fn
// succeeds, so a rejected move leaves the stored game untouched.
func (r *memoryGameRepository) Update(ctx context.Context, id string, fn func(*GameState) error) (*GameState, error) {
	_, span := tracer.Start(ctx, "GameRepository.Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	working := *state
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.UpdatedAt = r.now()
	r.games[id] = &working

	snapshot := working
	return &snapshot, nil
}

// Delete removes a game.
func (r *memoryGameRepository) Delete(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "GameRepository.Delete")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(r.games, id)
	return nil
}
