package db

import (
	"testing"

	"github.com/Tk21111/termdraw/config"
	"github.com/google/uuid"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := NewWriter(MemoryDSN)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestSnapshotUnknownRoom(t *testing.T) {
	w := newTestWriter(t)

	_, found, err := w.Snapshot(uuid.New())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if found {
		t.Error("Expected unknown room to be reported missing")
	}
}

func TestCreateRoomStartsEmpty(t *testing.T) {
	w := newTestWriter(t)
	roomID, owner := uuid.New(), uuid.New()

	if err := w.CreateRoom(roomID, owner); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	room, found, err := w.Snapshot(roomID)
	if err != nil || !found {
		t.Fatalf("Snapshot: found=%v err=%v", found, err)
	}
	if room.ID != roomID {
		t.Errorf("Expected room id %v, got %v", roomID, room.ID)
	}
	if len(room.Pixels) != 0 {
		t.Errorf("Expected no pixels, got %v", room.Pixels)
	}

	if err := w.CreateRoom(roomID, owner); err == nil {
		t.Error("Expected duplicate room id to fail")
	}
}

func TestSnapshotOrderAndOverwrite(t *testing.T) {
	w := newTestWriter(t)
	roomID, user := uuid.New(), uuid.New()
	if err := w.CreateRoom(roomID, user); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	w.AddPixel(roomID, user, config.Pixel{X: 0, Y: 0, Colour: config.ColourWhite})
	w.AddPixel(roomID, user, config.Pixel{X: 4, Y: 2, Colour: config.ColourBlue})
	w.AddPixel(roomID, user, config.Pixel{X: 0, Y: 0, Colour: config.ColourRed})
	w.AddPixel(roomID, user, config.Pixel{X: 9, Y: 9, Colour: config.ColourGreen})
	w.AddPixel(roomID, user, config.Pixel{X: 9, Y: 9, Colour: config.ColourClear})

	room, _, err := w.Snapshot(roomID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	want := []config.Pixel{
		{X: 4, Y: 2, Colour: config.ColourBlue},
		{X: 0, Y: 0, Colour: config.ColourRed},
	}
	if len(room.Pixels) != len(want) {
		t.Fatalf("Expected %v, got %v", want, room.Pixels)
	}
	for i := range want {
		if room.Pixels[i] != want[i] {
			t.Errorf("pixel %d: expected %v, got %v", i, want[i], room.Pixels[i])
		}
	}
}

func TestResetClearsOnlyThatRoom(t *testing.T) {
	w := newTestWriter(t)
	a, b, user := uuid.New(), uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, b} {
		if err := w.CreateRoom(id, user); err != nil {
			t.Fatalf("CreateRoom: %v", err)
		}
		w.AddPixel(id, user, config.Pixel{X: 1, Y: 1, Colour: config.ColourBlack})
	}

	w.Reset(a, user)

	roomA, _, _ := w.Snapshot(a)
	roomB, _, _ := w.Snapshot(b)
	if len(roomA.Pixels) != 0 {
		t.Errorf("Expected room a empty after reset, got %v", roomA.Pixels)
	}
	if len(roomB.Pixels) != 1 {
		t.Errorf("Expected room b untouched, got %v", roomB.Pixels)
	}
}

func TestClosedWriter(t *testing.T) {
	w, err := NewWriter(MemoryDSN)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := w.CreateRoom(uuid.New(), uuid.New()); err == nil {
		t.Error("Expected CreateRoom on a closed writer to fail")
	}
}
