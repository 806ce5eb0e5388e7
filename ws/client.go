package ws

import (
	"context"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/Tk21111/termdraw/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is the server's view of one connected terminal.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	roomID uuid.UUID
	userID uuid.UUID
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: uuid.New(),
	}
}

func (c *Client) joined() bool {
	return c.roomID != uuid.Nil
}

func (c *Client) read(ctx context.Context, h *Handler) {
	defer func() {
		if c.joined() {
			h.Hub.Leave(c.roomID, c)
		} else {
			close(c.send)
		}
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if !IsClosed(err) {
				logx.From(ctx).Debug("ws_read", zap.Error(err))
			}
			break
		}

		cmd, err := middleware.DecodeClientCommand(msg)
		if err != nil {
			logx.From(ctx).Debug("ws_bad_frame", zap.Error(err), zap.ByteString("frame", msg))
			continue
		}

		ctx = h.dispatch(ctx, c, cmd)
	}
}

func (c *Client) write() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// reply queues an event for this client only. Used before the client is
// in a room, when nothing else writes to send.
func (c *Client) reply(ev config.ServerEvent) bool {
	data := middleware.EncodeNetworkMsg(ev)
	if data == nil {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}
