package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/Tk21111/termdraw/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is what a finished handshake hands to the steady state.
type Result struct {
	Identity Identity
	Room     config.Room
	// Created is true when this client made the room.
	Created bool
}

type readDeadliner interface {
	SetReadDeadline(time.Time) error
}

func ParseRoomID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q: %v", ErrInvalidRoomID, raw, err)
	}
	return id, nil
}

// Create asks the server for a fresh room and waits for it.
func Create(ctx context.Context, t Transport) (Result, error) {
	if err := t.Send(config.CreateRoom()); err != nil {
		return Result{}, fmt.Errorf("%w: send CreateRoom: %v", ErrConnection, err)
	}

	ev, err := await(ctx, t, func(ev config.ServerEvent) bool {
		return ev.Kind == config.EvRoomCreated
	})
	if err != nil {
		return Result{}, err
	}
	if ev.UserID == uuid.Nil || ev.RoomID == uuid.Nil {
		return Result{}, fmt.Errorf("%w: RoomCreated without ids", ErrProtocolViolation)
	}

	return Result{
		Identity: Identity{UserID: ev.UserID, RoomID: ev.RoomID},
		Room:     config.Room{ID: ev.RoomID},
		Created:  true,
	}, nil
}

// Join enters an existing room. A malformed id fails before anything is
// sent; an unknown room returns ErrRoomNotFound and leaves the connection
// usable for another attempt.
func Join(ctx context.Context, t Transport, raw string) (Result, error) {
	roomID, err := ParseRoomID(raw)
	if err != nil {
		return Result{}, err
	}

	if err := t.Send(config.JoinRoom(roomID)); err != nil {
		return Result{}, fmt.Errorf("%w: send JoinRoom: %v", ErrConnection, err)
	}

	ev, err := await(ctx, t, func(ev config.ServerEvent) bool {
		return ev.Kind == config.EvRoomJoined || ev.Kind == config.EvRoomNotFound
	})
	if err != nil {
		return Result{}, err
	}
	if ev.Kind == config.EvRoomNotFound {
		return Result{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	if ev.UserID == uuid.Nil {
		return Result{}, fmt.Errorf("%w: RoomJoined without user id", ErrProtocolViolation)
	}

	room := ev.Room
	room.ID = roomID

	return Result{
		Identity: Identity{UserID: ev.UserID, RoomID: roomID},
		Room:     room,
	}, nil
}

// await reads frames until want accepts one. Frames that do not decode or
// are not wanted are logged and skipped.
func await(ctx context.Context, rx Receiver, want func(config.ServerEvent) bool) (_ config.ServerEvent, err error) {
	if d, ok := rx.(readDeadliner); ok {
		var (
			mu       sync.Mutex
			released bool
		)
		stop := context.AfterFunc(ctx, func() {
			mu.Lock()
			defer mu.Unlock()
			if !released {
				d.SetReadDeadline(time.Now())
			}
		})
		defer func() {
			stop()
			mu.Lock()
			released = true
			mu.Unlock()
			// a deadline left in the past would fail the next read for good
			if err == nil {
				d.SetReadDeadline(time.Time{})
			}
		}()
	}

	log := logx.From(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return config.ServerEvent{}, fmt.Errorf("%w: handshake: %v", ErrConnection, err)
		}

		frame, err := rx.Receive()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return config.ServerEvent{}, fmt.Errorf("%w: handshake: %v", ErrConnection, err)
		}

		ev, err := middleware.DecodeServerEvent(frame)
		if err != nil {
			log.Debug("handshake_bad_frame", zap.Error(err))
			continue
		}
		if want(ev) {
			return ev, nil
		}
		log.Debug("handshake_unexpected_event", zap.Stringer("kind", ev.Kind))
	}
}

// Handshaker runs the operator-driven room choice.
type Handshaker struct {
	Transport Transport
	// Ask returns a room id to join, or an empty string to create a room.
	// retry is true when the previous id was not found.
	Ask func(retry bool) (string, error)
	// Timeout bounds each create/join exchange, not the time spent in Ask.
	Timeout time.Duration
}

// Run re-asks after every RoomNotFound; any other failure ends it.
func (h Handshaker) Run(ctx context.Context) (Result, error) {
	retry := false
	for {
		raw, err := h.Ask(retry)
		if err != nil {
			return Result{}, err
		}

		res, err := h.exchange(ctx, strings.TrimSpace(raw))
		if errors.Is(err, ErrRoomNotFound) {
			logx.From(ctx).Info("room_not_found", zap.String("room_id", raw))
			retry = true
			continue
		}
		if err != nil {
			return Result{}, err
		}

		logx.From(ctx).Info("handshake_done",
			append(res.Identity.Fields(), zap.Bool("created", res.Created), zap.Int("pixels", len(res.Room.Pixels)))...,
		)
		return res, nil
	}
}

func (h Handshaker) exchange(ctx context.Context, raw string) (Result, error) {
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	if raw == "" {
		return Create(ctx, h.Transport)
	}
	return Join(ctx, h.Transport, raw)
}
