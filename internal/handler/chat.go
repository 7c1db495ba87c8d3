package handler

import (
	"context"
	"net/http"
	"strings"

	"eventbot/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ChatResponder is the piece of the chat service the handler depends on.
type ChatResponder interface {
	Respond(ctx context.Context, message string) (*model.ChatResponse, error)
}

// ChatHandler exposes the chatbot over HTTP.
type ChatHandler struct {
	chat ChatResponder
	log  zerolog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(chat ChatResponder, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chat: chat,
		log:  log.With().Str("component", "handler").Logger(),
	}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mensaje vacío"})
		return
	}

	resp, err := h.chat.Respond(c.Request.Context(), strings.TrimSpace(req.Message))
	if err != nil {
		h.log.Error().Err(err).Msg("chat request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al procesar la solicitud"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes mounts the API routes on the router.
func (h *ChatHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	api := r.Group("/api/v1")
	{
		api.POST("/chat", h.Chat)
	}
}
