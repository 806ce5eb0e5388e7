package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type CommandKind uint8

const (
	CmdCreateRoom CommandKind = iota + 1
	CmdJoinRoom
	CmdDraw
	CmdReset
)

var commandTags = map[CommandKind]string{
	CmdCreateRoom: "CreateRoom",
	CmdJoinRoom:   "JoinRoom",
	CmdDraw:       "Draw",
	CmdReset:      "Reset",
}

func (k CommandKind) String() string {
	if tag, ok := commandTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// ClientCommand is sent from a client to the server. Only the fields the
// Kind names are meaningful.
type ClientCommand struct {
	Kind   CommandKind
	RoomID uuid.UUID
	Pixel  Pixel
}

func CreateRoom() ClientCommand { return ClientCommand{Kind: CmdCreateRoom} }
func JoinRoom(id uuid.UUID) ClientCommand { return ClientCommand{Kind: CmdJoinRoom, RoomID: id} }
func Draw(p Pixel) ClientCommand { return ClientCommand{Kind: CmdDraw, Pixel: p} }
func Reset() ClientCommand { return ClientCommand{Kind: CmdReset} }

func (c ClientCommand) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CmdCreateRoom, CmdReset:
		return json.Marshal(commandTags[c.Kind])
	case CmdJoinRoom:
		return json.Marshal(map[string]uuid.UUID{commandTags[c.Kind]: c.RoomID})
	case CmdDraw:
		return json.Marshal(map[string]Pixel{commandTags[c.Kind]: c.Pixel})
	}
	return nil, fmt.Errorf("marshal client command: unknown kind %d", uint8(c.Kind))
}

func (c *ClientCommand) UnmarshalJSON(b []byte) error {
	tag, payload, err := splitTagged(b)
	if err != nil {
		return err
	}

	var out ClientCommand
	switch tag {
	case "CreateRoom":
		out.Kind = CmdCreateRoom
	case "Reset":
		out.Kind = CmdReset
	case "JoinRoom":
		out.Kind = CmdJoinRoom
		err = decodePayload(tag, payload, &out.RoomID)
	case "Draw":
		out.Kind = CmdDraw
		err = decodePayload(tag, payload, &out.Pixel)
	default:
		return fmt.Errorf("unknown client command %q", tag)
	}
	if err != nil {
		return err
	}
	if out.Kind == CmdCreateRoom || out.Kind == CmdReset {
		if payload != nil {
			return fmt.Errorf("client command %q takes no payload", tag)
		}
	}

	*c = out
	return nil
}

type EventKind uint8

const (
	EvRoomCreated EventKind = iota + 1
	EvRoomJoined
	EvRoomNotFound
	EvPeerDraw
	EvPeerReset
)

// wire tags of the existing room server
var eventTags = map[EventKind]string{
	EvRoomCreated:  "NewRoom",
	EvRoomJoined:   "Join",
	EvRoomNotFound: "RoomNotFound",
	EvPeerDraw:     "Draw",
	EvPeerReset:    "Reset",
}

func (k EventKind) String() string {
	switch k {
	case EvRoomCreated:
		return "RoomCreated"
	case EvRoomJoined:
		return "RoomJoined"
	case EvRoomNotFound:
		return "RoomNotFound"
	case EvPeerDraw:
		return "PeerDraw"
	case EvPeerReset:
		return "PeerReset"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// ServerEvent is pushed from the server to a client.
// RoomCreated sets RoomID and UserID, RoomJoined sets Room and UserID,
// PeerDraw sets UserID and Pixel, PeerReset sets UserID.
type ServerEvent struct {
	Kind   EventKind
	RoomID uuid.UUID
	UserID uuid.UUID
	Room   Room
	Pixel  Pixel
}

func RoomCreated(roomID, userID uuid.UUID) ServerEvent {
	return ServerEvent{Kind: EvRoomCreated, RoomID: roomID, UserID: userID}
}

func RoomJoined(room Room, userID uuid.UUID) ServerEvent {
	return ServerEvent{Kind: EvRoomJoined, Room: room, UserID: userID}
}

func RoomNotFound() ServerEvent { return ServerEvent{Kind: EvRoomNotFound} }

func PeerDraw(userID uuid.UUID, p Pixel) ServerEvent {
	return ServerEvent{Kind: EvPeerDraw, UserID: userID, Pixel: p}
}

func PeerReset(userID uuid.UUID) ServerEvent {
	return ServerEvent{Kind: EvPeerReset, UserID: userID}
}

// IsPeer reports whether the event is steady-state traffic carrying an
// originating user id.
func (e ServerEvent) IsPeer() bool {
	return e.Kind == EvPeerDraw || e.Kind == EvPeerReset
}

type newRoomPayload struct {
	RoomID uuid.UUID `json:"room_id"`
	UserID uuid.UUID `json:"user_id"`
}

type joinPayload struct {
	Room   Room      `json:"room"`
	UserID uuid.UUID `json:"user_id"`
}

type drawPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Pixel  *Pixel    `json:"pixel"`
}

func (e ServerEvent) MarshalJSON() ([]byte, error) {
	tag, ok := eventTags[e.Kind]
	if !ok {
		return nil, fmt.Errorf("marshal server event: unknown kind %d", uint8(e.Kind))
	}

	var payload any
	switch e.Kind {
	case EvRoomNotFound:
		return json.Marshal(tag)
	case EvRoomCreated:
		payload = newRoomPayload{RoomID: e.RoomID, UserID: e.UserID}
	case EvRoomJoined:
		payload = joinPayload{Room: e.Room, UserID: e.UserID}
	case EvPeerDraw:
		payload = drawPayload{UserID: e.UserID, Pixel: &e.Pixel}
	case EvPeerReset:
		payload = e.UserID
	}
	return json.Marshal(map[string]any{tag: payload})
}

func (e *ServerEvent) UnmarshalJSON(b []byte) error {
	tag, payload, err := splitTagged(b)
	if err != nil {
		return err
	}

	var out ServerEvent
	switch tag {
	case "RoomNotFound":
		if payload != nil {
			return errors.New("server event \"RoomNotFound\" takes no payload")
		}
		out.Kind = EvRoomNotFound
	case "NewRoom":
		var p newRoomPayload
		if err := decodePayload(tag, payload, &p); err != nil {
			return err
		}
		out = RoomCreated(p.RoomID, p.UserID)
	case "Join":
		var p joinPayload
		if err := decodePayload(tag, payload, &p); err != nil {
			return err
		}
		out = RoomJoined(p.Room, p.UserID)
	case "Draw":
		var p drawPayload
		if err := decodePayload(tag, payload, &p); err != nil {
			return err
		}
		if p.Pixel == nil {
			return errors.New("server event \"Draw\" requires a pixel")
		}
		if p.UserID == uuid.Nil {
			return errors.New("server event \"Draw\" requires a user id")
		}
		out = PeerDraw(p.UserID, *p.Pixel)
	case "Reset":
		var id uuid.UUID
		if err := decodePayload(tag, payload, &id); err != nil {
			return err
		}
		if id == uuid.Nil {
			return errors.New("server event \"Reset\" requires a user id")
		}
		out = PeerReset(id)
	default:
		return fmt.Errorf("unknown server event %q", tag)
	}

	*e = out
	return nil
}

// splitTagged reads an externally tagged value: either a bare string (unit
// variant, nil payload) or an object with exactly one key.
func splitTagged(b []byte) (string, json.RawMessage, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var tag string
		if err := json.Unmarshal(b, &tag); err != nil {
			return "", nil, err
		}
		return tag, nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("tagged value must have exactly one key, got %d", len(obj))
	}
	for tag, payload := range obj {
		return tag, payload, nil
	}
	return "", nil, errors.New("unreachable")
}

func decodePayload(tag string, payload json.RawMessage, v any) error {
	if payload == nil || bytes.Equal(payload, []byte("null")) {
		return fmt.Errorf("%q requires a payload", tag)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode %q payload: %w", tag, err)
	}
	return nil
}
