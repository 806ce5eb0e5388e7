package session

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/Tk21111/termdraw/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stats counts what the processor did with inbound frames.
type Stats struct {
	Applied   int64
	Echoes    int64
	Dropped   int64
	Anomalies int64
}

// Processor applies other peers' draws and resets to the canvas. It owns
// the receive half of the connection for the rest of the session.
type Processor struct {
	rx     Receiver
	canvas Canvas
	self   uuid.UUID

	done chan struct{}
	err  error

	applied   atomic.Int64
	echoes    atomic.Int64
	dropped   atomic.Int64
	anomalies atomic.Int64
}

func NewProcessor(rx Receiver, canvas Canvas, self uuid.UUID) *Processor {
	return &Processor{
		rx:     rx,
		canvas: canvas,
		self:   self,
		done:   make(chan struct{}),
	}
}

// Run consumes frames until the receive half fails, then closes Done.
// A panic while applying a frame ends Run the same way, with the panic as
// Err, so the terminal can still be restored on the main goroutine.
func (p *Processor) Run(ctx context.Context) {
	defer close(p.done)
	defer func() {
		if r := recover(); r != nil {
			p.err = fmt.Errorf("inbound processor panic: %v", r)
			logx.From(ctx).Error("inbound_panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	for {
		frame, err := p.rx.Receive()
		if err != nil {
			p.err = err
			logx.From(ctx).Info("inbound_closed", zap.Error(err), zap.Any("stats", p.Stats()))
			return
		}
		p.Handle(ctx, frame)
	}
}

// Done is closed once Run has returned.
func (p *Processor) Done() <-chan struct{} {
	return p.done
}

// Err is the receive error that ended Run. Only valid after Done.
func (p *Processor) Err() error {
	return p.err
}

func (p *Processor) Stats() Stats {
	return Stats{
		Applied:   p.applied.Load(),
		Echoes:    p.echoes.Load(),
		Dropped:   p.dropped.Load(),
		Anomalies: p.anomalies.Load(),
	}
}

// Handle applies one frame. Undecodable frames are counted and skipped.
func (p *Processor) Handle(ctx context.Context, frame []byte) {
	ev, err := middleware.DecodeServerEvent(frame)
	if err != nil {
		p.dropped.Add(1)
		logx.From(ctx).Debug("inbound_dropped", zap.Error(err), zap.Int("bytes", len(frame)))
		return
	}

	if !ev.IsPeer() {
		// handshake replies have no meaning once the session is running
		p.anomalies.Add(1)
		logx.From(ctx).Debug("inbound_anomaly", zap.Stringer("kind", ev.Kind))
		return
	}

	// already painted optimistically
	if ev.UserID == p.self {
		p.echoes.Add(1)
		return
	}

	switch ev.Kind {
	case config.EvPeerDraw:
		p.canvas.Draw(ev.Pixel)
	case config.EvPeerReset:
		p.canvas.Clear()
	}
	p.applied.Add(1)
}
