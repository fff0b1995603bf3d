package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-huddle/internal/infrastructure/realtime"
	userport "go-huddle/internal/repository/port"
)

// PeerStatusController reports whether a peer is online and, when offline,
// the advisory last-seen timestamp (one controller per endpoint). Live
// presence always wins over the cached record.
type PeerStatusController struct {
	Users userport.UserRepository
	Hub   *realtime.Hub
}

func NewPeerStatusController(users userport.UserRepository, hub *realtime.Hub) *PeerStatusController {
	return &PeerStatusController{Users: users, Hub: hub}
}

func (h *PeerStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := h.Users.FindByUsername(ctx, username)
		if errors.Is(err, userport.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if h.Hub.IsOnline(user.ID) {
			c.JSON(http.StatusOK, gin.H{"online": true})
			return
		}

		resp := gin.H{"online": false}
		if ts, ok := h.Hub.LastSeen(user.ID); ok {
			resp["lastSeenAt"] = ts.UTC().Format(time.RFC3339)
		}
		c.JSON(http.StatusOK, resp)
	}
}
