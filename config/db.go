package config

import "github.com/google/uuid"

// Jobs consumed by the room store's writer loop.

type RoomEvent struct {
	RoomID  uuid.UUID
	OwnerID uuid.UUID
	Now     int64
	Result  chan error
}

type PixelEvent struct {
	RoomID uuid.UUID
	UserID uuid.UUID
	Pixel  Pixel
	Now    int64
}

type ResetEvent struct {
	RoomID uuid.UUID
	UserID uuid.UUID
}

type SnapshotEvent struct {
	RoomID uuid.UUID
	Result chan SnapshotResult
}

type SnapshotResult struct {
	Room  Room
	Found bool
	Err   error
}
