package api

import (
	"net/http"

	"github.com/google/uuid"
)

func RoomIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("roomId")
	if raw == "" {
		http.Error(w, "roomId required", http.StatusBadRequest)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "roomId must be a uuid", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
