package config

import (
	"os"
	"path/filepath"
	"time"
)

// Settings are the client's tunables. The client has no flags or config
// file, so these are the values it runs with.
type Settings struct {
	// PollTimeout bounds each wait of the input loop.
	PollTimeout time.Duration
	// WriteTimeout bounds a single outbound frame.
	WriteTimeout time.Duration
	// HandshakeTimeout bounds the whole room handshake.
	HandshakeTimeout time.Duration
	// LogPath receives the client's log while the canvas owns the terminal.
	LogPath string
}

func DefaultSettings() Settings {
	return Settings{
		PollTimeout:      100 * time.Millisecond,
		WriteTimeout:     5 * time.Second,
		HandshakeTimeout: 30 * time.Second,
		LogPath:          filepath.Join(os.TempDir(), "termdraw.log"),
	}
}
