package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryDSN keeps every room in process memory; nothing outlives the
// server.
const MemoryDSN = ":memory:"

// Operation Types
const (
	OpRoomCreate = iota
	OpPixel
	OpReset
	OpSnapshot
)

type DbJob struct {
	Type     int
	Room     config.RoomEvent
	Pixel    config.PixelEvent
	Reset    config.ResetEvent
	Snapshot config.SnapshotEvent
}

// Writer owns the database. Every job, reads included, goes through one
// goroutine so a snapshot reflects exactly the draws queued before it.
type Writer struct {
	db   *sql.DB
	opCh chan DbJob

	closeOnce sync.Once
	done      chan struct{}
}

func NewWriter(dsn string) (*Writer, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// a :memory: database exists per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
        PRAGMA journal_mode = WAL;
        PRAGMA synchronous = NORMAL;
        PRAGMA busy_timeout = 5000;
    `); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS rooms (
			room_id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
    `)
	if err != nil {
		db.Close()
		return nil, err
	}

	// one row per painted cell; clock orders the snapshot
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS pixels (
			room_id TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			colour TEXT NOT NULL,
			user_id TEXT NOT NULL,
			clock INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (room_id, x, y)
		);
    `)
	if err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_pixels_room_clock
        ON pixels(room_id, clock);
    `)
	if err != nil {
		db.Close()
		return nil, err
	}

	clock, err := maxClock(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	w := &Writer{
		db:   db,
		opCh: make(chan DbJob, 10000),
		done: make(chan struct{}),
	}

	go w.writerLoop(clock)
	return w, nil
}

func (w *Writer) writerLoop(clock int64) {
	defer close(w.done)

	stmtPixel, err := w.db.Prepare(`
		INSERT INTO pixels (room_id, x, y, colour, user_id, clock, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(room_id, x, y)
		DO UPDATE SET
			colour = excluded.colour,
			user_id = excluded.user_id,
			clock = excluded.clock,
			created_at = excluded.created_at
	`)
	if err != nil {
		panic(err)
	}
	defer stmtPixel.Close()

	stmtErase, err := w.db.Prepare(`
		DELETE FROM pixels
		WHERE room_id = ? AND x = ? AND y = ?
	`)
	if err != nil {
		panic(err)
	}
	defer stmtErase.Close()

	stmtReset, err := w.db.Prepare(`
		DELETE FROM pixels
		WHERE room_id = ?
	`)
	if err != nil {
		panic(err)
	}
	defer stmtReset.Close()

	// --- Main Loop ---
	for job := range w.opCh {
		switch job.Type {

		case OpRoomCreate:
			j := job.Room
			_, err := w.db.Exec(
				`INSERT INTO rooms (room_id, owner_id, created_at) VALUES (?, ?, ?)`,
				j.RoomID.String(), j.OwnerID.String(), j.Now,
			)
			j.Result <- err

		case OpPixel:
			j := job.Pixel
			var err error
			// a cleared cell is just background, so forget it
			if j.Pixel.Colour == config.ColourClear {
				_, err = stmtErase.Exec(j.RoomID.String(), j.Pixel.X, j.Pixel.Y)
			} else {
				clock++
				_, err = stmtPixel.Exec(
					j.RoomID.String(), j.Pixel.X, j.Pixel.Y, j.Pixel.Colour.String(),
					j.UserID.String(), clock, j.Now,
				)
			}
			if err != nil {
				logx.L.Error("db_pixel", zap.Error(err))
			}

		case OpReset:
			j := job.Reset
			if _, err := stmtReset.Exec(j.RoomID.String()); err != nil {
				logx.L.Error("db_reset", zap.Error(err))
			}

		case OpSnapshot:
			j := job.Snapshot
			room, found, err := w.loadRoom(j.RoomID)
			j.Result <- config.SnapshotResult{Room: room, Found: found, Err: err}
		}
	}
}

// --- Public Methods ---

func (w *Writer) CreateRoom(roomID, ownerID uuid.UUID) error {
	result := make(chan error, 1)

	if err := w.enqueue(DbJob{
		Type: OpRoomCreate,
		Room: config.RoomEvent{
			RoomID:  roomID,
			OwnerID: ownerID,
			Now:     time.Now().UnixMilli(),
			Result:  result,
		},
	}); err != nil {
		return err
	}

	return <-result
}

// AddPixel queues a draw. It never blocks; a full queue drops the pixel.
func (w *Writer) AddPixel(roomID, userID uuid.UUID, p config.Pixel) {
	job := DbJob{Type: OpPixel, Pixel: config.PixelEvent{
		RoomID: roomID,
		UserID: userID,
		Pixel:  p,
		Now:    time.Now().UnixMilli(),
	}}
	if !w.offer(job) {
		logx.L.Warn("db_pixel_dropped", zap.Stringer("room_id", roomID))
	}
}

func (w *Writer) Reset(roomID, userID uuid.UUID) {
	job := DbJob{Type: OpReset, Reset: config.ResetEvent{RoomID: roomID, UserID: userID}}
	if !w.offer(job) {
		logx.L.Warn("db_reset_dropped", zap.Stringer("room_id", roomID))
	}
}

// Snapshot returns the room with its pixels in paint order.
func (w *Writer) Snapshot(roomID uuid.UUID) (config.Room, bool, error) {
	result := make(chan config.SnapshotResult, 1)

	if err := w.enqueue(DbJob{
		Type:     OpSnapshot,
		Snapshot: config.SnapshotEvent{RoomID: roomID, Result: result},
	}); err != nil {
		return config.Room{}, false, err
	}

	r := <-result
	return r.Room, r.Found, r.Err
}

// Close drains queued jobs and closes the database.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		close(w.opCh)
	})
	<-w.done
	return w.db.Close()
}

// offer queues job without blocking.
func (w *Writer) offer(job DbJob) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case w.opCh <- job:
		return true
	default:
		return false
	}
}

func (w *Writer) enqueue(job DbJob) (err error) {
	defer func() {
		// send on a closed opCh
		if recover() != nil {
			err = fmt.Errorf("writer closed")
		}
	}()
	w.opCh <- job
	return nil
}
