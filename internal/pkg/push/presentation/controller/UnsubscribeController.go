package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-huddle/internal/infrastructure/auth"
	"go-huddle/internal/pkg/push/application/usecase"
)

// UnsubscribeController handles explicit push unsubscription (one controller
// per endpoint).
type UnsubscribeController struct {
	UC *usecase.UnsubscribeUseCase
}

func NewUnsubscribeController(uc *usecase.UnsubscribeUseCase) *UnsubscribeController {
	return &UnsubscribeController{UC: uc}
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func (h *UnsubscribeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var req unsubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.UnsubscribeInput{
			UserID:   identity.UserID,
			Endpoint: req.Endpoint,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, in); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "unsubscribed"})
	}
}
