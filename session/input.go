package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/internal/logx"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// State is the input loop's own mutable state.
type State struct {
	Colour config.PixelColour
}

// Multiplexer is the main loop: it owns the terminal input, the send half
// of the connection and the active colour.
type Multiplexer struct {
	source      EventSource
	canvas      Canvas
	tx          Sender
	identity    Identity
	pollTimeout time.Duration

	state State
}

func NewMultiplexer(source EventSource, canvas Canvas, tx Sender, identity Identity, pollTimeout time.Duration) *Multiplexer {
	if pollTimeout <= 0 {
		pollTimeout = config.DefaultSettings().PollTimeout
	}
	return &Multiplexer{
		source:      source,
		canvas:      canvas,
		tx:          tx,
		identity:    identity,
		pollTimeout: pollTimeout,
		state:       State{Colour: config.ColourWhite},
	}
}

func (m *Multiplexer) State() State {
	return m.state
}

// Run loops until the operator quits (nil), a send fails, ctx ends, or
// disconnected closes.
func (m *Multiplexer) Run(ctx context.Context, disconnected <-chan struct{}) error {
	ctx = logx.With(ctx, m.identity.Fields()...)
	log := logx.From(ctx)

	events := make(chan tcell.Event, 64)
	failed := make(chan error, 1)
	quit := make(chan struct{})
	defer close(quit)
	go pump(m.source, events, failed, quit)

	tick := time.NewTicker(m.pollTimeout)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-disconnected:
			log.Warn("server_disconnected")
			return fmt.Errorf("%w: %w", ErrConnection, ErrDisconnected)

		case err := <-failed:
			log.Error("input_failed", zap.Error(err))
			return err

		case ev := <-events:
			// take whatever else is already queued so a fast drag is
			// painted in one pass
			batch := []tcell.Event{ev}
		drain:
			for {
				select {
				case more := <-events:
					batch = append(batch, more)
				default:
					break drain
				}
			}

			done, err := m.HandleBatch(batch)
			if err != nil {
				return err
			}
			if done {
				log.Info("operator_quit")
				return nil
			}

		case <-tick.C:
			// idle tick
		}
	}
}

// HandleBatch applies a run of terminal events. Pixels are painted before
// their Draw commands are sent. It reports true when a quit key was seen;
// events after it are ignored.
func (m *Multiplexer) HandleBatch(batch []tcell.Event) (bool, error) {
	var pending []config.Pixel

	for _, ev := range batch {
		switch ev := ev.(type) {
		case *tcell.EventMouse:
			if p, ok := m.pixelFor(ev); ok {
				pending = append(pending, p)
			}

		case *tcell.EventKey:
			switch {
			case isQuit(ev):
				return true, m.flush(pending)

			case isClear(ev):
				if err := m.flush(pending); err != nil {
					return false, err
				}
				pending = nil

				m.canvas.Clear()
				if err := m.tx.Send(config.Reset()); err != nil {
					return false, fmt.Errorf("%w: send Reset: %v", ErrConnection, err)
				}

			default:
				if c, ok := ColourForKey(ev); ok {
					m.state.Colour = c
				}
			}

		case *tcell.EventResize:
			m.canvas.Sync()
		}
	}

	return false, m.flush(pending)
}

func (m *Multiplexer) pixelFor(ev *tcell.EventMouse) (config.Pixel, bool) {
	buttons := ev.Buttons() & paintButtons
	if buttons == 0 {
		return config.Pixel{}, false
	}

	x, y := ev.Position()
	if x < 0 || y < 0 {
		return config.Pixel{}, false
	}

	colour := m.state.Colour
	if erases(buttons) {
		colour = config.ColourClear
	}
	return config.Pixel{X: uint32(x), Y: uint32(y), Colour: colour}, true
}

// flush paints pixels in one pass, then sends them in input order.
func (m *Multiplexer) flush(pixels []config.Pixel) error {
	if len(pixels) == 0 {
		return nil
	}

	m.canvas.DrawAll(pixels)
	for _, p := range pixels {
		if err := m.tx.Send(config.Draw(p)); err != nil {
			return fmt.Errorf("%w: send Draw: %v", ErrConnection, err)
		}
	}
	return nil
}

// pump feeds terminal events to Run. A panic in the terminal layer is
// handed back as an error so Run can return and the guard can restore the
// terminal.
func pump(source EventSource, events chan<- tcell.Event, failed chan<- error, quit <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			failed <- fmt.Errorf("terminal input panic: %v", r)
		}
	}()

	for {
		ev := source.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}
