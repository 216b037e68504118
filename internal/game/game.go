package game

import (
	"errors"
	"fmt"
)

// Result describes how a game stands.
type Result string

const (
	InProgress Result = "in_progress"
	XWins      Result = "x_wins"
	OWins      Result = "o_wins"
	Draw       Result = "draw"
)

var (
	ErrGameFinished = errors.New("game already finished")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrInvalidMark  = errors.New("invalid player mark")
)

// Game tracks whose turn it is on top of a Board. Unlike Board it never
// panics: every bad move is reported as an error for the turn loop to show.
type Game struct {
	Board       Board
	CurrentTurn PlayerMark
	Winner      PlayerMark
	IsDraw      bool
}

// NewGame starts an empty game where first moves first.
func NewGame(first PlayerMark) (*Game, error) {
	if first != PlayerX && first != PlayerO {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMark, first)
	}

	return &Game{
		Board:       NewBoard(),
		CurrentTurn: first,
		Winner:      None,
	}, nil
}

// Move validates and applies a move for mark at idx.
func (g *Game) Move(mark PlayerMark, idx int) error {
	if g.IsOver() {
		return ErrGameFinished
	}
	if !InRange(idx) {
		return fmt.Errorf("%w: %d", ErrInvalidCell, idx)
	}
	if g.Board[idx] != None {
		return fmt.Errorf("%w: %d", ErrCellOccupied, idx)
	}
	if g.CurrentTurn != mark {
		return ErrNotYourTurn
	}

	g.Board.ApplyMove(idx, mark)
	g.Winner = g.Board.Winner()
	g.IsDraw = g.Winner == None && g.Board.IsFull()

	if !g.IsOver() {
		g.CurrentTurn = Opponent(mark)
	} else {
		g.CurrentTurn = None
	}

	return nil
}

// IsOver reports whether the game has a winner or ended in a draw.
func (g *Game) IsOver() bool {
	return g.Winner != None || g.IsDraw
}

// Result returns the current outcome.
func (g *Game) Result() Result {
	return g.Board.Result()
}
