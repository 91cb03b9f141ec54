package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"musebot/middleware"
	"musebot/services/chat"
	"musebot/utils"
)

// ChatHandler serves the free-text /ask endpoint.
type ChatHandler struct {
	Svc    *chat.Service
	Logger *zap.Logger
}

func NewChatHandler(svc *chat.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

// AskRequest is the /ask request body.
type AskRequest struct {
	Question *string `json:"question"`
}

// Ask handles one chat turn.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request. Missing 'question' parameter.", "")
		return
	}

	sessionKey := c.GetString(middleware.SessionKeyContext)
	answer, err := h.Svc.HandleTurn(c.Request.Context(), sessionKey, *req.Question)
	if err != nil {
		h.Logger.Error("chat turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
