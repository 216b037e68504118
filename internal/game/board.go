package game

import (
	"errors"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Board boundaries
	BorderMin = 0
	BorderMax = 2

	// BoardSize is the number of cells on the board.
	BoardSize = 9
)

var ErrInvalidBoard = errors.New("invalid board")

// WinLines holds every row, column and diagonal that wins the game.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major: row r, column c lives at index 3r+c.
type Board [BoardSize]PlayerMark

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// ParseBoard builds a board from untrusted cell values, e.g. a JSON payload.
// Empty strings and " " are both read as empty cells.
func ParseBoard(cells []string) (Board, error) {
	var b Board
	if len(cells) != BoardSize {
		return b, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, BoardSize, len(cells))
	}

	var xCount, oCount int
	for i, cell := range cells {
		switch PlayerMark(cell) {
		case None, " ":
			b[i] = None
		case PlayerX:
			b[i] = PlayerX
			xCount++
		case PlayerO:
			b[i] = PlayerO
			oCount++
		default:
			return b, fmt.Errorf("%w: unknown mark %q at cell %d", ErrInvalidBoard, cell, i)
		}
	}

	if xCount-oCount > 1 || oCount-xCount > 1 {
		return b, fmt.Errorf("%w: mark counts differ by more than one (X=%d, O=%d)", ErrInvalidBoard, xCount, oCount)
	}

	return b, nil
}

// Index converts a row and column into a cell index.
func Index(row, col int) int {
	return row*3 + col
}

// RowCol converts a cell index into its row and column.
func RowCol(idx int) (row, col int) {
	return idx / 3, idx % 3
}

// RowColInRange reports whether row and col both address a cell on the board.
func RowColInRange(row, col int) bool {
	return row >= BorderMin && row <= BorderMax && col >= BorderMin && col <= BorderMax
}

// InRange reports whether idx addresses a cell on the board.
func InRange(idx int) bool {
	return idx >= 0 && idx < BoardSize
}

// Opponent returns the other player's mark.
func Opponent(mark PlayerMark) PlayerMark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// IsWin reports whether mark occupies all three cells of any win line.
func (b *Board) IsWin(mark PlayerMark) bool {
	if mark == None {
		return false
	}
	for _, line := range WinLines {
		if b[line[0]] == mark && b[line[1]] == mark && b[line[2]] == mark {
			return true
		}
	}
	return false
}

// IsFull reports whether no empty cell is left.
func (b *Board) IsFull() bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// LegalMoves returns the indices of all empty cells in ascending order.
// The search relies on this order for tie-breaking.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range b {
		if cell == None {
			moves = append(moves, i)
		}
	}
	return moves
}

// ApplyMove places mark on an empty cell. Callers pick idx from LegalMoves;
// anything else is a bug and panics.
func (b *Board) ApplyMove(idx int, mark PlayerMark) {
	if !InRange(idx) {
		panic(fmt.Sprintf("game: ApplyMove index %d out of range", idx))
	}
	if mark != PlayerX && mark != PlayerO {
		panic(fmt.Sprintf("game: ApplyMove with invalid mark %q", mark))
	}
	if b[idx] != None {
		panic(fmt.Sprintf("game: ApplyMove on occupied cell %d", idx))
	}
	b[idx] = mark
}

// UndoMove clears a cell previously set by ApplyMove.
func (b *Board) UndoMove(idx int) {
	if !InRange(idx) {
		panic(fmt.Sprintf("game: UndoMove index %d out of range", idx))
	}
	if b[idx] == None {
		panic(fmt.Sprintf("game: UndoMove on empty cell %d", idx))
	}
	b[idx] = None
}

// Winner returns the mark holding a complete line, or None.
func (b *Board) Winner() PlayerMark {
	switch {
	case b.IsWin(PlayerX):
		return PlayerX
	case b.IsWin(PlayerO):
		return PlayerO
	default:
		return None
	}
}

// Result classifies the board as finished or still in play.
func (b *Board) Result() Result {
	switch b.Winner() {
	case PlayerX:
		return XWins
	case PlayerO:
		return OWins
	}
	if b.IsFull() {
		return Draw
	}
	return InProgress
}

// Grid converts the board to a dynamic slice of rows for wire formats.
func (b Board) Grid() [][]PlayerMark {
	grid := make([][]PlayerMark, 3)
	for r := range [3]int{} {
		grid[r] = make([]PlayerMark, 3)
		for c := range [3]int{} {
			grid[r][c] = b[Index(r, c)]
		}
	}
	return grid
}

// Cells returns the board as plain strings.
func (b Board) Cells() []string {
	cells := make([]string, BoardSize)
	for i, cell := range b {
		cells[i] = string(cell)
	}
	return cells
}
