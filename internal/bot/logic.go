package bot

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/game"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -destination=mocks/mock_calculator.go -package=mocks ctchen222/tictactoe-minimax/internal/bot MoveCalculator

const instrumentationName = "ctchen222/tictactoe-minimax/internal/bot"

var ErrNoAvailableMoves = errors.New("no available moves")

// MoveCalculator defines an agent that can calculate the engine's next move.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board game.Board) (int, error)
}

// BotMoveCalculator implements MoveCalculator on top of the minimax search
// and reports every search to OpenTelemetry.
type BotMoveCalculator struct {
	tracer   trace.Tracer
	searches metric.Int64Counter
	nodes    metric.Int64Histogram
	duration metric.Float64Histogram
}

// NewBotMoveCalculator creates a calculator using the global telemetry providers.
func NewBotMoveCalculator() (*BotMoveCalculator, error) {
	meter := otel.Meter(instrumentationName)

	searches, err := meter.Int64Counter("bot.searches",
		metric.WithDescription("Number of move searches run by the engine"))
	if err != nil {
		return nil, fmt.Errorf("failed to create searches counter: %w", err)
	}

	nodes, err := meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions visited per search"))
	if err != nil {
		return nil, fmt.Errorf("failed to create nodes histogram: %w", err)
	}

	duration, err := meter.Float64Histogram("bot.search.duration",
		metric.WithDescription("Wall time spent per search"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &BotMoveCalculator{
		tracer:   otel.Tracer(instrumentationName),
		searches: searches,
		nodes:    nodes,
		duration: duration,
	}, nil
}

// CalculateNextMove returns the best cell for X on board. The caller's board
// is never touched; the search runs on a copy.
func (c *BotMoveCalculator) CalculateNextMove(ctx context.Context, board game.Board) (int, error) {
	analysis, err := c.Analyze(ctx, board)
	if err != nil {
		return NoMove, err
	}
	return analysis.Move, nil
}

// Analyze runs a full search and returns the per-move scores alongside the choice.
func (c *BotMoveCalculator) Analyze(ctx context.Context, board game.Board) (Analysis, error) {
	ctx, span := c.tracer.Start(ctx, "bot.CalculateNextMove")
	defer span.End()

	if board.Result() != game.InProgress {
		span.RecordError(ErrNoAvailableMoves)
		span.SetStatus(codes.Error, "Board is already decided")
		return Analysis{Move: NoMove}, ErrNoAvailableMoves
	}

	start := time.Now()
	analysis := Analyze(&board)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.Int("move.index", analysis.Move),
		attribute.Int("move.score", analysis.Score),
		attribute.Int("search.nodes", analysis.Nodes),
	)
	c.searches.Add(ctx, 1)
	c.nodes.Record(ctx, int64(analysis.Nodes))
	c.duration.Record(ctx, float64(elapsed.Microseconds())/1000)

	slog.DebugContext(ctx, "engine picked a move",
		"move", analysis.Move, "score", analysis.Score, "nodes", analysis.Nodes, "elapsed", elapsed)

	return analysis, nil
}
