package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-huddle/internal/infrastructure/auth"
	"go-huddle/internal/infrastructure/realtime"
)

// ChatSocketController handles the websocket endpoint. Connecting implicitly
// joins the authenticated user's delivery group; the only inbound frames are
// typing indicators.
type ChatSocketController struct {
	hub   *realtime.Hub
	authn *auth.Authenticator
}

func NewChatSocketController(hub *realtime.Hub, authn *auth.Authenticator) *ChatSocketController {
	return &ChatSocketController{hub: hub, authn: authn}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin deployment behind the app's own host; tighten when a
		// separate frontend origin appears.
		return true
	},
}

type inboundFrame struct {
	Type string `json:"type"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type connectedPayload struct {
	OnlineUserIDs []int64 `json:"onlineUserIds"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the HTTP connection and pumps frames until the client
// disconnects. The token travels as a query parameter because browsers
// cannot set headers on a websocket upgrade.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := ctl.authn.ValidateToken(c.Query("token"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(identity.UserID, ws)
		conn.Start()
		ctl.hub.Join(conn)
		defer func() {
			ctl.hub.Leave(conn.ID())
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.sendHandshake(conn)

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				// A dropped connection is an implicit leave.
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "typing_start":
				ctl.hub.PublishTyping(identity.UserID, identity.DisplayName, true)
			case "typing_stop":
				ctl.hub.PublishTyping(identity.UserID, identity.DisplayName, false)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) sendHandshake(conn *realtime.Connection) {
	ack := struct {
		Type string           `json:"type"`
		Data connectedPayload `json:"data"`
	}{
		Type: realtime.EventConnected,
		Data: connectedPayload{OnlineUserIDs: ctl.hub.OnlineUserIDs()},
	}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{
		Type:  "error",
		Code:  code,
		Error: message,
	}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
