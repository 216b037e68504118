package server

import (
	"ctchen222/tictactoe-minimax/internal/api/controller"
	"ctchen222/tictactoe-minimax/internal/api/response"
	"ctchen222/tictactoe-minimax/internal/hub"
	"ctchen222/tictactoe-minimax/internal/hub/types"
	"ctchen222/tictactoe-minimax/internal/player"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Server wires the HTTP API and the websocket rooms onto one gin engine.
type Server struct {
	hub            *hub.Hub
	engine         *gin.Engine
	upgrader       websocket.Upgrader
	gameController *controller.GameController
}

func NewServer(h *hub.Hub, gameController *controller.GameController) *Server {
	s := &Server{
		hub:            h,
		engine:         gin.New(),
		gameController: gameController,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.RegisterHandlers()
	return s
}

// Engine returns the gin engine to be served by an http.Server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterHandlers() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponse(c, gin.H{"status": "ok", "active_rooms": s.hub.ActiveRooms()})
	})
	s.engine.GET("/ws", s.handleWebSocket)

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/games", s.gameController.Create)
		v1.GET("/games/:id", s.gameController.Get)
		v1.POST("/games/:id/moves", s.gameController.Move)
		v1.DELETE("/games/:id", s.gameController.Delete)
		v1.POST("/analysis", s.gameController.Analyze)
	}
}

// handleWebSocket's only responsibility is to upgrade the connection and
// pass a registration request to the hub.
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	ctx, span := tracer.Start(r.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
		attribute.String("http.method", r.Method),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	// Get playerID from URL, or generate a new one.
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		playerID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("player.id", playerID))

	p := player.NewPlayer(playerID, conn)
	if !s.hub.Submit(&types.RegistrationRequest{Player: p, Ctx: ctx}) {
		slog.WarnContext(ctx, "Hub is stopped, dropping connection", "player.id", playerID)
		span.SetStatus(codes.Error, "Hub is stopped")
		conn.Close()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
