package session

import (
	"errors"

	"github.com/Tk21111/termdraw/config"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidRoomID     = errors.New("invalid room id")
	ErrConnection        = errors.New("connection error")
	ErrProtocolViolation = errors.New("protocol violation")
	ErrRoomNotFound      = errors.New("room not found")
	ErrDisconnected      = errors.New("server closed the connection")
)

// Identity is fixed by the handshake and never changes afterwards.
type Identity struct {
	UserID uuid.UUID
	RoomID uuid.UUID
}

func (id Identity) Fields() []zap.Field {
	return []zap.Field{
		zap.Stringer("user_id", id.UserID),
		zap.Stringer("room_id", id.RoomID),
	}
}

type Sender interface {
	Send(config.ClientCommand) error
}

type Receiver interface {
	Receive() ([]byte, error)
}

type Transport interface {
	Sender
	Receiver
}

// Canvas is the render surface shared by the input loop and the inbound
// processor.
type Canvas interface {
	Draw(config.Pixel)
	DrawAll([]config.Pixel)
	Clear()
	Sync()
}

// EventSource yields terminal input. PollEvent returns nil once the
// terminal is shut down.
type EventSource interface {
	PollEvent() tcell.Event
}
