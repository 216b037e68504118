package controller

import (
	"ctchen222/tictactoe-minimax/internal/api/models"
	"ctchen222/tictactoe-minimax/internal/api/response"
	"ctchen222/tictactoe-minimax/internal/api/service"
	"ctchen222/tictactoe-minimax/internal/bot"
	"ctchen222/tictactoe-minimax/internal/game"
	"ctchen222/tictactoe-minimax/internal/repository"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("api.controller")

// GameController handles game-related HTTP requests.
type GameController struct {
	gameService service.GameService
}

// NewGameController creates a new GameController.
func NewGameController(gameService service.GameService) *GameController {
	return &GameController{
		gameService: gameService,
	}
}

// Create handles the new game endpoint.
func (gc *GameController) Create(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GameController.Create")
	defer span.End()

	var req models.CreateGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	span.SetAttributes(attribute.String("game.first", req.First))

	state, err := gc.gameService.NewGame(ctx, req.First == models.FirstAI)
	if err != nil {
		respondError(c, span, err)
		return
	}

	response.SuccessResponse(c, models.NewGameResponse(state))
}

// Get handles the game lookup endpoint.
func (gc *GameController) Get(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GameController.Get", trace.WithAttributes(
		attribute.String("game.id", c.Param("id")),
	))
	defer span.End()

	state, err := gc.gameService.GetGame(ctx, c.Param("id"))
	if err != nil {
		respondError(c, span, err)
		return
	}

	response.SuccessResponse(c, models.NewGameResponse(state))
}

// Move handles a human move followed by the engine's reply.
func (gc *GameController) Move(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GameController.Move", trace.WithAttributes(
		attribute.String("game.id", c.Param("id")),
	))
	defer span.End()

	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.Int("game.position", *req.Position))

	state, err := gc.gameService.PlayMove(ctx, c.Param("id"), *req.Position)
	if err != nil {
		respondError(c, span, err)
		return
	}

	response.SuccessResponse(c, models.NewGameResponse(state))
}

// Delete handles the game removal endpoint.
func (gc *GameController) Delete(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GameController.Delete", trace.WithAttributes(
		attribute.String("game.id", c.Param("id")),
	))
	defer span.End()

	if err := gc.gameService.DeleteGame(ctx, c.Param("id")); err != nil {
		respondError(c, span, err)
		return
	}

	response.SuccessResponse(c, gin.H{"id": c.Param("id")})
}

// Analyze scores every legal X move on the posted board.
func (gc *GameController) Analyze(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GameController.Analyze")
	defer span.End()

	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	board, err := game.ParseBoard(req.Board)
	if err != nil {
		respondError(c, span, err)
		return
	}

	analysis, err := gc.gameService.Analyze(ctx, board)
	if err != nil {
		respondError(c, span, err)
		return
	}

	response.SuccessResponse(c, analysis)
}

func respondError(c *gin.Context, span trace.Span, err error) {
	apiErr := toAPIError(err)
	if apiErr.Code >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, apiErr.Extras)
	}
	response.AbortWithError(c, apiErr)
}

// toAPIError maps domain errors to HTTP status codes.
func toAPIError(err error) response.Error {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return response.NewError(false, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidCell), errors.Is(err, game.ErrInvalidBoard):
		return response.NewError(false, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrCellOccupied), errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrNotYourTurn), errors.Is(err, bot.ErrNoAvailableMoves):
		return response.NewError(false, http.StatusConflict, err.Error())
	default:
		return response.NewError(false, http.StatusInternalServerError, err.Error())
	}
}
