package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
)

// Run paints the room snapshot, starts the inbound processor and hands
// the terminal to the input loop. It returns nil when the operator quits.
// The connection is left open; the caller closes it, which also stops the
// processor.
func Run(ctx context.Context, source EventSource, canvas Canvas, conn Transport, res Result, settings config.Settings) error {
	ctx = logx.With(ctx, res.Identity.Fields()...)

	canvas.Clear()
	canvas.DrawAll(res.Room.Pixels)

	proc := NewProcessor(conn, canvas, res.Identity.UserID)
	go proc.Run(ctx)

	mux := NewMultiplexer(source, canvas, conn, res.Identity, settings.PollTimeout)
	err := mux.Run(ctx, proc.Done())
	if errors.Is(err, ErrDisconnected) && proc.Err() != nil {
		return fmt.Errorf("%w (%v)", err, proc.Err())
	}
	return err
}
