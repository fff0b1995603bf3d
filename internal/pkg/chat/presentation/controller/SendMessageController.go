package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-huddle/internal/infrastructure/auth"
	chat "go-huddle/internal/pkg/chat/application/domain"
	"go-huddle/internal/pkg/chat/application/usecase"
)

// SendMessageController handles the send-message endpoint only (one
// controller per endpoint).
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{UC: uc}
}

// sendMessageRequest is the DTO for the HTTP request body. The sender comes
// from the authenticated identity, never the body.
type sendMessageRequest struct {
	To   string          `json:"to" binding:"required"`
	Body *string         `json:"body"`
	File *fileRefRequest `json:"file"`
}

type fileRefRequest struct {
	Path     string `json:"path" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// Handle returns a gin handler that runs the send pipeline and responds with
// the persisted message.
func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var file *chat.FileRef
		if req.File != nil {
			file = &chat.FileRef{
				Path:     req.File.Path,
				Name:     req.File.Name,
				Size:     req.File.Size,
				MimeType: req.File.MimeType,
			}
		}

		in := usecase.SendMessageInput{
			SenderID:          identity.UserID,
			SenderUsername:    identity.Username,
			RecipientUsername: req.To,
			Body:              req.Body,
			File:              file,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		msg, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			case errors.Is(err, usecase.ErrRecipientNotFound):
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, usecase.ToPayload(msg))
	}
}
