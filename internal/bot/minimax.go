package bot

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"math"
)

// Terminal scores from X's point of view. A win is weighted by winWeight
// before the depth penalty is applied, so that a win at any depth still
// outranks a draw.
const (
	ScoreX    = 1
	ScoreO    = -1
	ScoreDraw = 0

	// NoMove is returned when the board has no empty cell.
	NoMove = -1

	winWeight = game.BoardSize + 1
)

// Analysis is the outcome of a root search for X.
type Analysis struct {
	Move   int         `json:"move"`
	Score  int         `json:"score"`
	Scores map[int]int `json:"scores"`
	Nodes  int         `json:"nodes"`
}

type search struct {
	nodes int
}

// Evaluate returns the minimax value of b. depth counts plies from the move
// that follows the root; maximizing is true when X is to move.
// b is left exactly as it was given.
func Evaluate(b *game.Board, depth int, maximizing bool) int {
	s := &search{}
	return s.evaluate(b, depth, maximizing)
}

// FindBestMove returns the cell X should play, preferring the lowest index
// among equally scored moves, or NoMove when the board is full.
func FindBestMove(b *game.Board) int {
	return Analyze(b).Move
}

// Analyze scores every legal move for X and picks the best one.
func Analyze(b *game.Board) Analysis {
	s := &search{}
	result := Analysis{
		Move:   NoMove,
		Score:  math.MinInt,
		Scores: make(map[int]int),
	}

	for _, move := range b.LegalMoves() {
		score := withMove(b, move, game.PlayerX, func() int {
			return s.evaluate(b, 0, false)
		})
		result.Scores[move] = score

		if score > result.Score {
			result.Score = score
			result.Move = move
		}
	}

	if result.Move == NoMove {
		result.Score = ScoreDraw
	}
	result.Nodes = s.nodes
	return result
}

func (s *search) evaluate(b *game.Board, depth int, maximizing bool) int {
	s.nodes++

	if b.IsWin(game.PlayerX) {
		return ScoreX*winWeight - depth
	}
	if b.IsWin(game.PlayerO) {
		return ScoreO*winWeight + depth
	}
	if b.IsFull() {
		return ScoreDraw
	}

	if maximizing {
		best := math.MinInt
		for _, move := range b.LegalMoves() {
			best = max(best, withMove(b, move, game.PlayerX, func() int {
				return s.evaluate(b, depth+1, false)
			}))
		}
		return best
	}

	best := math.MaxInt
	for _, move := range b.LegalMoves() {
		best = min(best, withMove(b, move, game.PlayerO, func() int {
			return s.evaluate(b, depth+1, true)
		}))
	}
	return best
}

// withMove plays mark at idx for the duration of fn. The cell is cleared
// again on every exit path, including a panic inside fn.
func withMove(b *game.Board, idx int, mark game.PlayerMark, fn func() int) int {
	b.ApplyMove(idx, mark)
	defer b.UndoMove(idx)
	return fn()
}
