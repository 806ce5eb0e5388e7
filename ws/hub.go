package ws

import (
	"sync"

	"github.com/google/uuid"
)

type Room struct {
	clients map[*Client]bool
}

// Hub tracks the live clients of every room. Room contents live in the
// store; the hub only fans frames out.
type Hub struct {
	rooms map[uuid.UUID]*Room
	mu    sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]*Room),
	}
}

// Join adds c to the room. welcome runs under the hub lock and returns
// the first frame c receives; a false return leaves c outside the room.
// Holding the lock across welcome means no broadcast can slip between
// the snapshot and the client's first live frame.
func (h *Hub) Join(roomID uuid.UUID, c *Client, welcome func() ([]byte, bool)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg, ok := welcome()
	if !ok {
		return false
	}

	select {
	case c.send <- msg:
	default:
		return false
	}

	room, ok := h.rooms[roomID]
	if !ok {
		room = &Room{
			clients: make(map[*Client]bool),
		}
		h.rooms[roomID] = room
	}

	c.roomID = roomID
	room.clients[c] = true
	return true
}

func (h *Hub) Leave(roomID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}

	if room.clients[c] {
		delete(room.clients, c)
		close(c.send)
	}
	if len(room.clients) == 0 {
		delete(h.rooms, roomID)
	}
}

// Publish runs record and then sends msg to every client in the room,
// the sender included, all under the hub lock.
func (h *Hub) Publish(roomID uuid.UUID, msg []byte, record func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if record != nil {
		record()
	}

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}

	for c := range room.clients {
		select {
		case c.send <- msg:
		default:
			// too slow, drop it
			close(c.send)
			delete(room.clients, c)
		}
	}
}

// Peers returns the number of live clients in the room.
func (h *Hub) Peers(roomID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[roomID]; ok {
		return len(room.clients)
	}
	return 0
}
