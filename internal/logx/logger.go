package logx

import (
	"os"

	"go.uber.org/zap"
)

// L is a no-op until Init runs, so packages can log from tests.
var L = zap.NewNop()

// Init builds the process logger. An empty outputPath keeps zap's default
// stderr output; the terminal client passes a file because stdout and
// stderr belong to the canvas.
func Init(outputPath string) error {
	cfg := zap.NewProductionConfig()

	// Local dev readability
	if os.Getenv("ENV") != "prod" {
		cfg = zap.NewDevelopmentConfig()
	}

	if outputPath != "" {
		cfg.OutputPaths = []string{outputPath}
		cfg.ErrorOutputPaths = []string{outputPath}
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	L = logger
	return nil
}

// Sync flushes buffered entries. Errors from syncing a terminal are
// expected and ignored.
func Sync() {
	_ = L.Sync()
}
