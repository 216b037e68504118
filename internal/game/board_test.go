package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = PlayerX
	o = PlayerO
	e = None
)

func TestIsWin(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		mark  PlayerMark
		want  bool
	}{
		{
			name:  "No winner - empty board",
			board: Board{},
			mark:  PlayerX,
			want:  false,
		},
		{
			name: "X wins - first row",
			board: Board{
				x, x, x,
				e, o, e,
				e, e, o,
			},
			mark: PlayerX,
			want: true,
		},
		{
			name: "O wins - second column",
			board: Board{
				x, o, e,
				x, o, e,
				e, o, e,
			},
			mark: PlayerO,
			want: true,
		},
		{
			name: "X wins - main diagonal",
			board: Board{
				x, e, e,
				e, x, e,
				e, e, x,
			},
			mark: PlayerX,
			want: true,
		},
		{
			name: "O wins - anti-diagonal",
			board: Board{
				e, e, o,
				e, o, e,
				o, e, e,
			},
			mark: PlayerO,
			want: true,
		},
		{
			name: "Line of X is not a win for O",
			board: Board{
				x, x, x,
				o, o, e,
				e, e, e,
			},
			mark: PlayerO,
			want: false,
		},
		{
			name:  "Empty mark never wins",
			board: Board{},
			mark:  None,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.IsWin(tt.mark); got != tt.want {
				t.Errorf("IsWin(%q) got = %v, want %v", tt.mark, got, tt.want)
			}
		})
	}
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{
			name:  "Empty board is not full",
			board: Board{},
			want:  false,
		},
		{
			name: "Partial board is not full",
			board: Board{
				x, e, e,
				e, o, e,
				e, e, e,
			},
			want: false,
		},
		{
			name: "Full board is full",
			board: Board{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.IsFull(); got != tt.want {
				t.Errorf("IsFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawRecognition(t *testing.T) {
	board := Board{
		x, o, x,
		x, o, o,
		o, x, x,
	}

	assert.False(t, board.IsWin(PlayerX))
	assert.False(t, board.IsWin(PlayerO))
	assert.True(t, board.IsFull())
	assert.Equal(t, Draw, board.Result())
}

func TestLegalMoves(t *testing.T) {
	t.Run("Empty board yields every cell in order", func(t *testing.T) {
		board := NewBoard()
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, board.LegalMoves())
	})

	t.Run("Occupied cells are skipped", func(t *testing.T) {
		board := Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}
		assert.Equal(t, []int{2, 5, 6, 7, 8}, board.LegalMoves())
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		board := Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}
		assert.Empty(t, board.LegalMoves())
	})
}

func TestApplyAndUndoMove(t *testing.T) {
	board := NewBoard()

	board.ApplyMove(4, PlayerX)
	assert.Equal(t, PlayerX, board[4])

	board.UndoMove(4)
	assert.Equal(t, NewBoard(), board)
}

func TestApplyMove_ContractViolations(t *testing.T) {
	t.Run("Occupied cell panics", func(t *testing.T) {
		board := NewBoard()
		board.ApplyMove(0, PlayerX)
		assert.Panics(t, func() { board.ApplyMove(0, PlayerO) })
	})

	t.Run("Out of range panics", func(t *testing.T) {
		board := NewBoard()
		assert.Panics(t, func() { board.ApplyMove(9, PlayerX) })
		assert.Panics(t, func() { board.ApplyMove(-1, PlayerX) })
	})

	t.Run("Empty mark panics", func(t *testing.T) {
		board := NewBoard()
		assert.Panics(t, func() { board.ApplyMove(0, None) })
	})

	t.Run("Undo on empty cell panics", func(t *testing.T) {
		board := NewBoard()
		assert.Panics(t, func() { board.UndoMove(3) })
	})
}

func TestResult(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Result
	}{
		{name: "Empty board is in progress", board: Board{}, want: InProgress},
		{name: "X line", board: Board{x, x, x, o, o, e, e, e, e}, want: XWins},
		{name: "O line", board: Board{x, x, e, o, o, o, x, e, e}, want: OWins},
		{name: "Full without a line", board: Board{x, o, x, x, o, o, o, x, x}, want: Draw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Result())
		})
	}
}

func TestParseBoard(t *testing.T) {
	t.Run("Accepts blanks and spaces as empty cells", func(t *testing.T) {
		board, err := ParseBoard([]string{"X", " ", "", "O", "", "", "", "", ""})
		require.NoError(t, err)
		assert.Equal(t, Board{x, e, e, o, e, e, e, e, e}, board)
	})

	t.Run("Rejects wrong length", func(t *testing.T) {
		_, err := ParseBoard([]string{"X"})
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		_, err := ParseBoard([]string{"Z", "", "", "", "", "", "", "", ""})
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Rejects unbalanced mark counts", func(t *testing.T) {
		_, err := ParseBoard([]string{"X", "X", "", "", "", "", "", "", ""})
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestIndexRowCol(t *testing.T) {
	for idx := range BoardSize {
		row, col := RowCol(idx)
		assert.Equal(t, idx, Index(row, col))
		assert.True(t, RowColInRange(row, col))
	}
}

func TestRowColInRange(t *testing.T) {
	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{2, 2, true},
		{1, 2, true},
		{-1, 0, false},
		{0, 3, false},
		{3, 0, false},
		{0, -1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RowColInRange(tt.row, tt.col), "row=%d col=%d", tt.row, tt.col)
	}
}

func TestGrid(t *testing.T) {
	board := Board{x, e, e, e, o, e, e, e, x}

	assert.Equal(t, [][]PlayerMark{
		{x, e, e},
		{e, o, e},
		{e, e, x},
	}, board.Grid())
}
