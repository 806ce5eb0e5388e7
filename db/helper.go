package db

import (
	"database/sql"

	"github.com/Tk21111/termdraw/config"
	"github.com/google/uuid"
)

func maxClock(db *sql.DB) (int64, error) {
	var clock int64

	err := db.QueryRow(`
		SELECT COALESCE(MAX(clock), 0)
		FROM pixels
	`).Scan(&clock)

	if err != nil {
		return 0, err
	}

	return clock, nil
}

func (w *Writer) roomExists(roomID uuid.UUID) (bool, error) {
	var dummy int

	err := w.db.QueryRow(`
		SELECT 1
		FROM rooms
		WHERE room_id = ?
	`, roomID.String()).Scan(&dummy)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (w *Writer) loadRoom(roomID uuid.UUID) (config.Room, bool, error) {
	exists, err := w.roomExists(roomID)
	if err != nil || !exists {
		return config.Room{}, false, err
	}

	rows, err := w.db.Query(`
		SELECT x, y, colour
		FROM pixels
		WHERE room_id = ?
		ORDER BY clock ASC
	`, roomID.String())
	if err != nil {
		return config.Room{}, false, err
	}
	defer rows.Close()

	room := config.Room{ID: roomID, Pixels: []config.Pixel{}}

	for rows.Next() {
		var (
			p      config.Pixel
			colour string
		)
		if err := rows.Scan(&p.X, &p.Y, &colour); err != nil {
			return config.Room{}, false, err
		}
		if p.Colour, err = config.ParseColour(colour); err != nil {
			return config.Room{}, false, err
		}
		room.Pixels = append(room.Pixels, p)
	}

	return room, true, rows.Err()
}
