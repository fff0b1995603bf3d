package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	wpport "go-huddle/internal/infrastructure/webpush/port"
)

// PublicKeyController serves the signing public key browsers need to create
// a push subscription. In degraded mode (no keypair configured) it returns an
// empty key, never an error, so clients simply skip subscribing.
type PublicKeyController struct {
	Sender wpport.Sender // nil in degraded mode
}

func NewPublicKeyController(sender wpport.Sender) *PublicKeyController {
	return &PublicKeyController{Sender: sender}
}

func (h *PublicKeyController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""
		if h.Sender != nil {
			key = h.Sender.PublicKey()
		}
		c.JSON(http.StatusOK, gin.H{"publicKey": key})
	}
}
