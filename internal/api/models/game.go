package models

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/repository"
)

// Who opens a new game.
const (
	FirstHuman = "human"
	FirstAI    = "ai"
)

// CreateGameRequest defines the body of a new game request. An empty
// First lets the human open.
type CreateGameRequest struct {
	First string `json:"first" binding:"omitempty,oneof=human ai"`
}

// MoveRequest carries the cell index (0-8) the human wants to mark.
type MoveRequest struct {
	Position *int `json:"position" binding:"required"`
}

// AnalysisRequest carries a full board in row-major order.
type AnalysisRequest struct {
	Board []string `json:"board" binding:"required,len=9,dive,mark"`
}

// GameResponse is the client view of a game session.
type GameResponse struct {
	ID       string          `json:"id"`
	Board    []string        `json:"board"`
	Next     game.PlayerMark `json:"next"`
	Winner   game.PlayerMark `json:"winner"`
	Result   game.Result     `json:"result"`
	LastMove *int            `json:"last_move"`
}

// NewGameResponse builds the response for a stored game.
func NewGameResponse(state *repository.GameState) GameResponse {
	resp := GameResponse{
		ID:     state.ID,
		Board:  state.Game.Board.Cells(),
		Next:   state.Game.CurrentTurn,
		Winner: state.Game.Winner,
		Result: state.Game.Result(),
	}
	if game.InRange(state.LastMove) {
		last := state.LastMove
		resp.LastMove = &last
	}
	return resp
}
