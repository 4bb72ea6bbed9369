package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"firesafety-backend/internal/app"
	"firesafety-backend/internal/model"
	"firesafety-backend/internal/transport/http/response"
)

// ChatService is the slice of the chat application the HTTP layer needs.
type ChatService interface {
	CreateSession(ctx context.Context, userID, text string) (*model.Session, error)
	AddMessage(ctx context.Context, sessionID, text string) (*model.Message, *model.Session, error)
	ListSessions(ctx context.Context, userID string) ([]model.Session, error)
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	RegenerateTitle(ctx context.Context, sessionID string) (string, error)
	RegenerateMessage(ctx context.Context, sessionID, messageID string) (*model.Message, *model.Session, error)
	ApplyFeedback(ctx context.Context, sessionID, messageID string, action model.Feedback) (*model.Message, error)
	UpdatePrompt(ctx context.Context, sessionID, messageID, newPrompt string) error
}

type ChatHandler struct {
	chat ChatService
}

func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type createSessionRequest struct {
	Text   string `json:"text"`
	UserID string `json:"userId"`
}

type addMessageRequest struct {
	Text string `json:"text"`
}

type likeMessageRequest struct {
	Action string `json:"action"`
}

type updatePromptRequest struct {
	NewPrompt string `json:"newPrompt"`
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	_ = c.ShouldBindJSON(&req)

	session, err := h.chat.CreateSession(c.Request.Context(), req.UserID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTextRequired):
			response.Error(c, http.StatusBadRequest, "Text is required")
		case errors.Is(err, app.ErrUserIDRequired):
			response.Error(c, http.StatusBadRequest, "User ID is required")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create session")
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *ChatHandler) AddMessage(c *gin.Context) {
	var req addMessageRequest
	_ = c.ShouldBindJSON(&req)

	message, session, err := h.chat.AddMessage(c.Request.Context(), c.Param("sessionId"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTextRequired):
			response.Error(c, http.StatusBadRequest, "Text is required")
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, "Session not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to add message")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"updatedSession": session,
	})
}

func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions, err := h.chat.ListSessions(c.Request.Context(), c.Query("userId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chat.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, app.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve session")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *ChatHandler) UpdateTitle(c *gin.Context) {
	sessionID := c.Param("sessionId")
	title, err := h.chat.RegenerateTitle(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, app.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update session title")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"title":     title,
		"message":   "Session title updated successfully",
	})
}

func (h *ChatHandler) RegenerateMessage(c *gin.Context) {
	messageID := c.Param("messageId")
	message, session, err := h.chat.RegenerateMessage(c.Request.Context(), c.Param("sessionId"), messageID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, "Session not found")
		case errors.Is(err, app.ErrMessageNotFound):
			response.Error(c, http.StatusNotFound, "Message not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to regenerate message response")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"updatedSession": session,
		"messageId":      messageID,
		"regenerated":    true,
	})
}

func (h *ChatHandler) LikeMessage(c *gin.Context) {
	var req likeMessageRequest
	_ = c.ShouldBindJSON(&req)

	messageID := c.Param("messageId")
	message, err := h.chat.ApplyFeedback(c.Request.Context(), c.Param("sessionId"), messageID, model.Feedback(req.Action))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidFeedback):
			response.Error(c, http.StatusBadRequest, `Action must be "like" or "dislike"`)
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, "Session not found")
		case errors.Is(err, app.ErrMessageNotFound):
			response.Error(c, http.StatusNotFound, "Message not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update message feedback")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"action":       req.Action,
		"likes":        message.Likes,
		"dislikes":     message.Dislikes,
		"userFeedback": message.UserFeedback,
		"messageId":    messageID,
	})
}

func (h *ChatHandler) UpdatePrompt(c *gin.Context) {
	var req updatePromptRequest
	_ = c.ShouldBindJSON(&req)

	err := h.chat.UpdatePrompt(c.Request.Context(), c.Param("sessionId"), c.Param("messageId"), req.NewPrompt)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPromptRequired):
			response.Error(c, http.StatusBadRequest, "New prompt is required")
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, "Session not found")
		case errors.Is(err, app.ErrMessageNotFound):
			response.Error(c, http.StatusNotFound, "Message not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update prompt")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Prompt updated and AI response regenerated successfully",
	})
}
