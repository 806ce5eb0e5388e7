package ws

import (
	"context"
	"net/http"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/Tk21111/termdraw/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RoomStore is what the handler needs from room persistence.
type RoomStore interface {
	CreateRoom(roomID, ownerID uuid.UUID) error
	Snapshot(roomID uuid.UUID) (config.Room, bool, error)
	AddPixel(roomID, userID uuid.UUID, p config.Pixel)
	Reset(roomID, userID uuid.UUID)
}

// Handler is the room server's websocket endpoint.
type Handler struct {
	Hub   *Hub
	Store RoomStore
}

func NewHandler(store RoomStore) *Handler {
	return &Handler{Hub: NewHub(), Store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.From(r.Context()).Warn("upgrade", zap.Error(err))
		return
	}

	client := newClient(conn)
	ctx := logx.With(r.Context(), zap.Stringer("user_id", client.userID))

	logx.From(ctx).Info("client_connected")

	go client.write()
	client.read(ctx, h)

	logx.From(ctx).Info("client_disconnected")
}

// dispatch handles one decoded command and returns the context to use
// for the next one, carrying the room once the client has joined.
func (h *Handler) dispatch(ctx context.Context, c *Client, cmd config.ClientCommand) context.Context {
	log := logx.From(ctx)

	switch cmd.Kind {
	case config.CmdCreateRoom:
		if c.joined() {
			log.Debug("create_after_join")
			return ctx
		}

		roomID := uuid.New()
		ok := h.Hub.Join(roomID, c, func() ([]byte, bool) {
			if err := h.Store.CreateRoom(roomID, c.userID); err != nil {
				log.Error("create_room", zap.Error(err))
				return nil, false
			}
			return middleware.EncodeNetworkMsg(config.RoomCreated(roomID, c.userID)), true
		})
		if !ok {
			return ctx
		}

		ctx = logx.With(ctx, zap.Stringer("room_id", roomID))
		logx.From(ctx).Info("room_created")

	case config.CmdJoinRoom:
		if c.joined() {
			log.Debug("join_after_join")
			return ctx
		}

		found := false
		ok := h.Hub.Join(cmd.RoomID, c, func() ([]byte, bool) {
			room, exists, err := h.Store.Snapshot(cmd.RoomID)
			if err != nil {
				log.Error("snapshot", zap.Error(err))
				return nil, false
			}
			if !exists {
				return nil, false
			}
			found = true
			return middleware.EncodeNetworkMsg(config.RoomJoined(room, c.userID)), true
		})
		if !ok {
			if !found {
				// connection stays open so the client can try another id
				c.reply(config.RoomNotFound())
			}
			return ctx
		}

		ctx = logx.With(ctx, zap.Stringer("room_id", cmd.RoomID))
		logx.From(ctx).Info("room_joined", zap.Int("peers", h.Hub.Peers(cmd.RoomID)))

	case config.CmdDraw:
		if !c.joined() {
			log.Debug("draw_before_join")
			return ctx
		}

		p := cmd.Pixel
		msg := middleware.EncodeNetworkMsg(config.PeerDraw(c.userID, p))
		h.Hub.Publish(c.roomID, msg, func() {
			h.Store.AddPixel(c.roomID, c.userID, p)
		})

	case config.CmdReset:
		if !c.joined() {
			log.Debug("reset_before_join")
			return ctx
		}

		msg := middleware.EncodeNetworkMsg(config.PeerReset(c.userID))
		h.Hub.Publish(c.roomID, msg, func() {
			h.Store.Reset(c.roomID, c.userID)
		})
		log.Info("room_reset")
	}

	return ctx
}
