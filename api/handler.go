package api

import (
	"encoding/json"
	"net/http"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Snapshotter interface {
	Snapshot(roomID uuid.UUID) (config.Room, bool, error)
}

// GetRoom serves the current canvas of a room: GET /rooms?roomId=<uuid>.
func GetRoom(store Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Use GET", http.StatusMethodNotAllowed)
			return
		}

		roomID, ok := RoomIDParam(w, r)
		if !ok {
			return
		}

		room, found, err := store.Snapshot(roomID)
		if err != nil {
			logx.From(r.Context()).Error("snapshot", zap.Error(err))
			http.Error(w, "fail to load room", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "room not exist", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(room)
	}
}
