package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Tk21111/termdraw/config"
	"github.com/Tk21111/termdraw/middleware"
	"github.com/google/uuid"
)

var (
	selfID  = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	otherID = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	roomID  = uuid.MustParse("33333333-3333-4333-8333-333333333333")
)

// opLog records canvas and network calls in the order they happened.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, fmt.Sprintf(format, args...))
}

func (l *opLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

type fakeCanvas struct {
	log *opLog
}

func (c fakeCanvas) Draw(p config.Pixel) { c.log.add("draw %d,%d %v", p.X, p.Y, p.Colour) }
func (c fakeCanvas) DrawAll(ps []config.Pixel) {
	for _, p := range ps {
		c.log.add("draw %d,%d %v", p.X, p.Y, p.Colour)
	}
}
func (c fakeCanvas) Clear() { c.log.add("clear") }
func (c fakeCanvas) Sync() { c.log.add("sync") }

type fakeTransport struct {
	log     *opLog
	frames  chan []byte
	sendErr error

	mu   sync.Mutex
	sent []config.ClientCommand
}

func newFakeTransport(log *opLog) *fakeTransport {
	return &fakeTransport{log: log, frames: make(chan []byte, 32)}
}

func (f *fakeTransport) Send(cmd config.ClientCommand) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	f.sent = append(f.sent, cmd)
	f.mu.Unlock()
	if f.log != nil {
		if cmd.Kind == config.CmdDraw {
			f.log.add("send Draw %d,%d %v", cmd.Pixel.X, cmd.Pixel.Y, cmd.Pixel.Colour)
		} else {
			f.log.add("send %v", cmd.Kind)
		}
	}
	return nil
}

func (f *fakeTransport) Receive() ([]byte, error) {
	frame, ok := <-f.frames
	if !ok {
		return nil, io.EOF
	}
	return frame, nil
}

func (f *fakeTransport) commands() []config.ClientCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]config.ClientCommand(nil), f.sent...)
}

func (f *fakeTransport) push(ev config.ServerEvent) {
	f.frames <- middleware.EncodeNetworkMsg(ev)
}

func (f *fakeTransport) pushRaw(frame string) {
	f.frames <- []byte(frame)
}

var errSend = errors.New("broken pipe")

// waitFor polls cond until it holds or the deadline passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
