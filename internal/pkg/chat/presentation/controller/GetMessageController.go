package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-huddle/internal/infrastructure/auth"
	"go-huddle/internal/pkg/chat/application/usecase"
)

// GetMessageController handles fetching a conversation's history (one
// controller per endpoint).
type GetMessageController struct {
	UC *usecase.GetMessageUseCase
}

func NewGetMessageController(uc *usecase.GetMessageUseCase) *GetMessageController {
	return &GetMessageController{UC: uc}
}

func (h *GetMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		peer := c.Param("username")
		if peer == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
			return
		}

		in := usecase.GetMessageInput{
			RequesterUsername: identity.Username,
			PeerUsername:      peer,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]usecase.MessagePayload, 0, len(msgs))
		for i := range msgs {
			out = append(out, usecase.ToPayload(&msgs[i]))
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": out,
			"count":    len(out),
		})
	}
}
