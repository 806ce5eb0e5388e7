package ws

import (
	"context"
	"fmt"
	"time"

	"github.com/Tk21111/termdraw/config"
	"github.com/gorilla/websocket"
	"go.uber.org/multierr"
)

// Conn is the client end of a room connection. Send and Receive may run
// on different goroutines, but each must have a single caller.
type Conn struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func Dial(ctx context.Context, url string, writeTimeout time.Duration) (*Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Conn{conn: conn, writeTimeout: writeTimeout}, nil
}

// Send writes one command as one text frame.
func (c *Conn) Send(cmd config.ClientCommand) error {
	data, err := cmd.MarshalJSON()
	if err != nil {
		return err
	}

	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Receive blocks for the next data frame.
func (c *Conn) Receive() ([]byte, error) {
	_, msg, err := c.conn.ReadMessage()
	return msg, err
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

// Close says goodbye to the server and drops the socket. There is no
// leave-room message; the server sees the close.
func (c *Conn) Close() error {
	deadline := time.Now().Add(time.Second)
	bye := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := c.conn.WriteControl(websocket.CloseMessage, bye, deadline)
	if err == websocket.ErrCloseSent {
		err = nil
	}
	return multierr.Append(err, c.conn.Close())
}

// IsClosed reports whether err just means the peer hung up.
func IsClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
