package ws

import (
	"testing"

	"github.com/google/uuid"
)

func testClient(buf int) *Client {
	return &Client{send: make(chan []byte, buf), userID: uuid.New()}
}

func welcome(msg string) func() ([]byte, bool) {
	return func() ([]byte, bool) { return []byte(msg), true }
}

func TestHubJoinSendsWelcomeFirst(t *testing.T) {
	h := NewHub()
	room := uuid.New()
	c := testClient(4)

	if !h.Join(room, c, welcome("hello")) {
		t.Fatal("Join failed")
	}
	h.Publish(room, []byte("draw"), nil)

	if got := string(<-c.send); got != "hello" {
		t.Errorf("Expected welcome first, got %q", got)
	}
	if got := string(<-c.send); got != "draw" {
		t.Errorf("Expected draw second, got %q", got)
	}
	if c.roomID != room {
		t.Errorf("Client room not set")
	}
}

func TestHubJoinRefused(t *testing.T) {
	h := NewHub()
	room := uuid.New()
	c := testClient(1)

	ok := h.Join(room, c, func() ([]byte, bool) { return nil, false })
	if ok {
		t.Fatal("Expected Join to be refused")
	}
	if h.Peers(room) != 0 || c.joined() {
		t.Error("Refused client must stay outside the room")
	}
}

func TestHubPublishReachesEveryone(t *testing.T) {
	h := NewHub()
	room, other := uuid.New(), uuid.New()
	a, b, c := testClient(4), testClient(4), testClient(4)

	h.Join(room, a, welcome("w"))
	h.Join(room, b, welcome("w"))
	h.Join(other, c, welcome("w"))
	for _, cl := range []*Client{a, b, c} {
		<-cl.send
	}

	recorded := 0
	h.Publish(room, []byte("px"), func() { recorded++ })

	if recorded != 1 {
		t.Errorf("Expected record once, got %d", recorded)
	}
	for _, cl := range []*Client{a, b} {
		if got := string(<-cl.send); got != "px" {
			t.Errorf("Expected px, got %q", got)
		}
	}
	if len(c.send) != 0 {
		t.Error("Other room must not receive the frame")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	room := uuid.New()
	slow := testClient(1)

	h.Join(room, slow, welcome("w"))
	h.Publish(room, []byte("px"), nil)

	if h.Peers(room) != 0 {
		t.Fatalf("Expected slow client dropped, %d peers left", h.Peers(room))
	}

	<-slow.send
	if _, open := <-slow.send; open {
		t.Error("Expected send channel closed")
	}

	// leaving after being dropped must not close twice
	h.Leave(room, slow)
}

func TestHubLeave(t *testing.T) {
	h := NewHub()
	room := uuid.New()
	a, b := testClient(2), testClient(2)

	h.Join(room, a, welcome("w"))
	h.Join(room, b, welcome("w"))
	h.Leave(room, a)

	if h.Peers(room) != 1 {
		t.Errorf("Expected 1 peer, got %d", h.Peers(room))
	}

	h.Leave(room, b)
	if _, exists := h.rooms[room]; exists {
		t.Error("Empty room should be forgotten")
	}
}
