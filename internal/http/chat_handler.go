package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"doctor-ai/internal/domain"
	"doctor-ai/internal/llm"
	"doctor-ai/internal/repository"
	"doctor-ai/internal/service"
)

const apiVersion = "2.0.0"

// ChatHandler mantiene dependencias para los endpoints de chat e historial.
type ChatHandler struct {
	logger *zap.Logger
	chat   *service.ChatService
	turns  repository.TurnRepository
	cache  *repository.RedisSessionCache
}

func NewChatHandler(
	logger *zap.Logger,
	chat *service.ChatService,
	turns repository.TurnRepository,
	cache *repository.RedisSessionCache,
) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		chat:   chat,
		turns:  turns,
		cache:  cache,
	}
}

// Health maneja GET /.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Doctor AI API is running",
		"version": apiVersion,
	})
}

// PostChat maneja POST /api/chat. El campo conversation se acepta por
// compatibilidad con clientes viejos pero se ignora: el historial vive en el
// log del servidor.
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req struct {
		Message      string        `json:"message" binding:"required"`
		Conversation []llm.Message `json:"conversation"`
		Latitude     float64       `json:"latitude"`
		Longitude    float64       `json:"longitude"`
		SessionID    string        `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "message and sessionId are required"})
		return
	}

	loc := domain.Location{Latitude: req.Latitude, Longitude: req.Longitude}
	res, err := h.chat.Handle(c.Request.Context(), req.SessionID, req.Message, loc)
	if errors.Is(err, service.ErrUpstreamDegraded) {
		// Falla recuperable: la respuesta degradada viaja por el canal normal.
		err = nil
	}
	if errors.Is(err, service.ErrInvalidChatInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message and sessionId are required"})
		return
	}
	if err != nil {
		h.logger.Error("chat turn failed", zap.Error(err), zap.String("session_id", req.SessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":     res.Reply,
		"conversation": res.Conversation,
	})
}

// LoadChat maneja GET /api/loadchat?sessionId=. Una sesión desconocida
// devuelve una lista vacía, no un error.
func (h *ChatHandler) LoadChat(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("sessionId"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	turns, err := h.turns.ListBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("load chat failed", zap.Error(err), zap.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load chat"})
		return
	}

	messages := make([]gin.H, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, gin.H{
			"sender": t.Sender,
			"text":   t.Text,
			"type":   t.Tag,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ListSessions maneja GET /api/sessions, con paso previo por el cache.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	if sessions, ok := h.cache.Get(ctx); ok {
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
		return
	}

	sessions, err := h.turns.ListSessions(ctx)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}
	if sessions == nil {
		sessions = []domain.SessionInfo{}
	}

	h.cache.Set(ctx, sessions)
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
