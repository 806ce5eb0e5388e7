package middleware

import (
	"hash/fnv"

	"github.com/Tk21111/termdraw/config"
	"github.com/google/uuid"
)

// ColorFromUserID picks a stable, non-Clear colour for a user.
func ColorFromUserID(userID uuid.UUID) config.PixelColour {
	h := fnv.New32a()
	h.Write(userID[:])
	hash := h.Sum32()

	palette := config.Colours()[1:]
	return palette[hash%uint32(len(palette))]
}
