package console

import (
	"bytes"
	"context"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/bot/mocks"
	"ctchen222/tictactoe-minimax/internal/game"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSession_RenderBoard(t *testing.T) {
	s := NewSession(strings.NewReader(""), &bytes.Buffer{}, nil, false)
	b := game.NewBoard()
	b.ApplyMove(0, game.PlayerX)
	b.ApplyMove(4, game.PlayerO)

	want := "-------------\n" +
		"| X |   |   |\n" +
		"-------------\n" +
		"|   | O |   |\n" +
		"-------------\n" +
		"|   |   |   |\n" +
		"-------------\n"
	assert.Equal(t, want, s.RenderBoard(b))
}

func TestSession_Play_HumanWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	calc := mocks.NewMockMoveCalculator(ctrl)
	gomock.InOrder(
		calc.EXPECT().CalculateNextMove(gomock.Any(), gomock.Any()).Return(3, nil),
		calc.EXPECT().CalculateNextMove(gomock.Any(), gomock.Any()).Return(4, nil),
	)

	var out bytes.Buffer
	in := strings.NewReader("x\n0\n0\n1\n2\n")

	result, err := NewSession(in, &out, calc, false).Play(context.Background())

	require.NoError(t, err)
	assert.Equal(t, game.OWins, result)
	assert.Equal(t, 1, strings.Count(out.String(), msgBadInput))
	assert.Equal(t, 1, strings.Count(out.String(), msgBadMove))
	assert.Equal(t, 2, strings.Count(out.String(), msgThinking))
	assert.Contains(t, out.String(), "AI chose position 3")
	assert.Contains(t, out.String(), "AI chose position 4")
	assert.True(t, strings.HasSuffix(out.String(), msgHumanWins+"\n"))
	assert.Contains(t, out.String(), "6 | 7 | 8\n\n"+rowSeparator+"\n")
}

func TestSession_Play_EngineFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	calc := mocks.NewMockMoveCalculator(ctrl)
	calc.EXPECT().CalculateNextMove(gomock.Any(), game.NewBoard()).Return(4, nil)

	var out bytes.Buffer
	_, err := NewSession(strings.NewReader(""), &out, calc, true).Play(context.Background())

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.True(t, IsUnexpectedEOF(err))
	thinking := strings.Index(out.String(), msgThinking)
	prompt := strings.Index(out.String(), promptMove)
	require.NotEqual(t, -1, thinking)
	assert.Less(t, thinking, prompt)
}

func TestSession_Play_OutOfRangeIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	calc := mocks.NewMockMoveCalculator(ctrl)

	var out bytes.Buffer
	_, err := NewSession(strings.NewReader("-1\n9\n"), &out, calc, false).Play(context.Background())

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 2, strings.Count(out.String(), msgBadMove))
}

func TestSession_Play_EngineError(t *testing.T) {
	ctrl := gomock.NewController(t)
	calc := mocks.NewMockMoveCalculator(ctrl)
	calc.EXPECT().CalculateNextMove(gomock.Any(), gomock.Any()).Return(bot.NoMove, errors.New("boom"))

	_, err := NewSession(strings.NewReader("4\n"), &bytes.Buffer{}, calc, false).Play(context.Background())

	assert.ErrorContains(t, err, "boom")
}

func TestSession_Play_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSession(strings.NewReader("4\n"), &bytes.Buffer{}, nil, false).Play(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

// The human tries the cells in ascending order every turn; the engine must
// never lose whoever opens.
func TestSession_Play_EngineNeverLoses(t *testing.T) {
	calc, err := bot.NewBotMoveCalculator()
	require.NoError(t, err)
	input := strings.Repeat("0\n1\n2\n3\n4\n5\n6\n7\n8\n", 9)

	for _, engineFirst := range []bool{false, true} {
		var out bytes.Buffer

		result, err := NewSession(strings.NewReader(input), &out, calc, engineFirst).Play(context.Background())

		require.NoError(t, err)
		assert.NotEqual(t, game.OWins, result)
		assert.NotContains(t, out.String(), msgHumanWins)
	}
}
