package proto

import "ctchen222/tictactoe-minimax/internal/game"

// Message types exchanged over the websocket.
const (
	TypeMove       = "move"
	TypeRematch    = "rematch"
	TypeAssignment = "assignment"
	TypeUpdate     = "update"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move rematch"`
	Position []int  `json:"position,omitempty" validate:"omitempty,len=2,dive,min=0,max=2"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type     string              `json:"type" validate:"required"`
	Reason   string              `json:"reason,omitempty"`
	Board    [][]game.PlayerMark `json:"board,omitempty"`
	Next     game.PlayerMark     `json:"next,omitempty"`
	Winner   game.PlayerMark     `json:"winner,omitempty"`
	IsDraw   bool                `json:"isDraw,omitempty"`
	LastMove []int               `json:"lastMove,omitempty"`
}

// PlayerAssignmentMessage informs a player of their assigned mark.
type PlayerAssignmentMessage struct {
	Type     string          `json:"type"`
	PlayerID string          `json:"playerId,omitempty"`
	Mark     game.PlayerMark `json:"mark"`
}
