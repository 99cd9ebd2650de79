package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/realtime"
	"recruitment-platform/pkg/logger"
)

type ChatHandler struct {
	hub       *realtime.Hub
	messageUC domain.MessageUsecase
	upgrader  websocket.Upgrader
}

// NewChatHandler mounts the chat socket. Browsers pass the token as ?token=.
func NewChatHandler(r *gin.RouterGroup, hub *realtime.Hub, messageUC domain.MessageUsecase, allowedOrigins []string, production bool, gate Gate) {
	handler := &ChatHandler{
		hub:       hub,
		messageUC: messageUC,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins, production),
		},
	}

	r.GET("/ws/chat", gate(authz.OpChatConnect), handler.Connect)
}

func originChecker(allowed []string, production bool) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if set[origin] {
			return true
		}
		return !production && len(set) == 0
	}
}

// Connect godoc
// @Summary      Chat socket
// @Description  Upgrade to a WebSocket. Send {"receiver_id","content"} frames, receive {"type":"message"} pushes.
// @Tags         messages
// @Param        token  query  string  false  "Bearer token when headers cannot be set"
// @Success      101
// @Failure      401  {object}  response.Response
// @Router       /ws/chat [get]
// @Security     BearerAuth
func (h *ChatHandler) Connect(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logger.Log.Warn("chat upgrade failed", "username", who.Username, "error", err)
		return
	}

	sub := h.hub.Subscribe(who.Username)
	logger.Log.Info("chat connected", "username", who.Username, "sessions", h.hub.Count(who.Username))
	realtime.NewClient(conn, sub, who, h.messageUC).Serve(c.Request.Context())
	logger.Log.Info("chat disconnected", "username", who.Username)
}
