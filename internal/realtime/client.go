package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// inbound is a chat frame sent by the client.
type inbound struct {
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
}

// Client pumps one WebSocket connection. Only the write loop writes to conn.
type Client struct {
	conn     *websocket.Conn
	sub      *Subscription
	who      domain.Identity
	messages domain.MessageUsecase
	replies  chan []byte
}

func NewClient(conn *websocket.Conn, sub *Subscription, who domain.Identity, messages domain.MessageUsecase) *Client {
	return &Client{
		conn:     conn,
		sub:      sub,
		who:      who,
		messages: messages,
		replies:  make(chan []byte, 8),
	}
}

// Serve blocks until the connection closes or ctx is done.
func (c *Client) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.sub.Close()

	go c.writeLoop(ctx, cancel)
	c.readLoop(ctx)
}

func (c *Client) readLoop(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Warn("chat connection closed unexpectedly", "username", c.who.Username, "error", err)
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(data, &in); err != nil {
			c.reply(Frame{Type: "error", Error: "invalid frame"})
			continue
		}

		msg, err := c.messages.Send(ctx, c.who, in.ReceiverID, in.Content)
		if err != nil {
			c.reply(Frame{Type: "error", Error: clientMessage(err)})
			continue
		}
		c.reply(Frame{Type: "sent", Data: msg})
	}
}

func (c *Client) reply(f Frame) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case c.replies <- payload:
	default:
	}
}

func (c *Client) writeLoop(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload, ok := <-c.sub.C():
			if !ok {
				return
			}
			if !c.write(websocket.TextMessage, payload) {
				return
			}
		case payload := <-c.replies:
			if !c.write(websocket.TextMessage, payload) {
				return
			}
		case <-ticker.C:
			if !c.write(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *Client) write(kind int, payload []byte) bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(kind, payload) == nil
}

func clientMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
		return appErr.Message
	}
	return "Internal Server Error"
}
