package console

import (
	"bufio"
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/game"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Marks are fixed: the human plays O against the engine's X.
const (
	HumanMark  = game.PlayerO
	EngineMark = game.PlayerX
)

const (
	promptMove   = "Your turn (O). Enter a move (0-8): "
	msgBadInput  = "Invalid input. Please enter a number."
	msgBadMove   = "Invalid move. Please choose an empty cell (0-8)."
	msgThinking  = "AI is thinking..."
	msgHumanWins = "🎉 Congratulations! You win!"
	msgAIWins    = "🤖 AI wins! Better luck next time."
	msgDraw      = "🤝 It's a draw!"
	rowSeparator = "-------------"
)

const legend = `The board positions correspond to numbers 0-8:
0 | 1 | 2
---------
3 | 4 | 5
---------
6 | 7 | 8
`

// Session is one console game between a human reading from in and the engine.
type Session struct {
	in          *bufio.Scanner
	out         io.Writer
	calculator  bot.MoveCalculator
	engineFirst bool

	xStyle lipgloss.Style
	oStyle lipgloss.Style
}

// NewSession creates a session. Colours are only emitted when out is a terminal.
func NewSession(in io.Reader, out io.Writer, calculator bot.MoveCalculator, engineFirst bool) *Session {
	renderer := lipgloss.NewRenderer(out)
	return &Session{
		in:          bufio.NewScanner(in),
		out:         out,
		calculator:  calculator,
		engineFirst: engineFirst,
		xStyle:      renderer.NewStyle().Foreground(lipgloss.Color("#df1010")),
		oStyle:      renderer.NewStyle().Foreground(lipgloss.Color("#5f61fc")),
	}
}

// Play runs the game to the end and returns its result. Running out of
// input before the game is decided yields io.ErrUnexpectedEOF.
func (s *Session) Play(ctx context.Context) (game.Result, error) {
	first := HumanMark
	if s.engineFirst {
		first = EngineMark
	}
	g, err := game.NewGame(first)
	if err != nil {
		return game.InProgress, err
	}

	fmt.Fprintln(s.out, "Welcome to Tic-Tac-Toe! You are 'O', the AI is 'X'.")
	fmt.Fprint(s.out, legend+"\n")
	fmt.Fprint(s.out, s.RenderBoard(g.Board))

	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return game.InProgress, err
		}

		if g.CurrentTurn == HumanMark {
			idx, err := s.readMove(g)
			if err != nil {
				return game.InProgress, err
			}
			if err := g.Move(HumanMark, idx); err != nil {
				return game.InProgress, err
			}
			slog.DebugContext(ctx, "human moved", "move", idx)
		} else {
			fmt.Fprintln(s.out, msgThinking)
			move, err := s.calculator.CalculateNextMove(ctx, g.Board)
			if err != nil {
				return game.InProgress, fmt.Errorf("engine failed to move: %w", err)
			}
			if err := g.Move(EngineMark, move); err != nil {
				return game.InProgress, fmt.Errorf("engine produced an illegal move %d: %w", move, err)
			}
			fmt.Fprintf(s.out, "AI chose position %d\n", move)
		}

		fmt.Fprint(s.out, s.RenderBoard(g.Board))
	}

	result := g.Result()
	switch result {
	case game.OWins:
		fmt.Fprintln(s.out, msgHumanWins)
	case game.XWins:
		fmt.Fprintln(s.out, msgAIWins)
	default:
		fmt.Fprintln(s.out, msgDraw)
	}
	return result, nil
}

// readMove prompts until the human enters the index of an empty cell.
func (s *Session) readMove(g *game.Game) (int, error) {
	for {
		fmt.Fprint(s.out, promptMove)
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return 0, fmt.Errorf("failed to read move: %w", err)
			}
			return 0, io.ErrUnexpectedEOF
		}

		idx, err := strconv.Atoi(strings.TrimSpace(s.in.Text()))
		if err != nil {
			fmt.Fprintln(s.out, msgBadInput)
			continue
		}
		if !game.InRange(idx) || g.Board[idx] != game.None {
			fmt.Fprintln(s.out, msgBadMove)
			continue
		}
		return idx, nil
	}
}

// RenderBoard draws b as a 3x3 grid with separator rows.
func (s *Session) RenderBoard(b game.Board) string {
	var sb strings.Builder
	sb.WriteString(rowSeparator + "\n")
	for row := range 3 {
		sb.WriteString("|")
		for col := range 3 {
			sb.WriteString(" " + s.renderCell(b[game.Index(row, col)]) + " |")
		}
		sb.WriteString("\n" + rowSeparator + "\n")
	}
	return sb.String()
}

func (s *Session) renderCell(mark game.PlayerMark) string {
	switch mark {
	case game.PlayerX:
		return s.xStyle.Render(string(mark))
	case game.PlayerO:
		return s.oStyle.Render(string(mark))
	default:
		return " "
	}
}

// IsUnexpectedEOF reports whether err means the input ended mid-game.
func IsUnexpectedEOF(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
