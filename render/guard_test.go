package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type countingScreen struct {
	tcell.Screen
	finis int
}

func (c *countingScreen) Fini() {
	c.finis++
	c.Screen.Fini()
}

func TestGuardReleasesOnce(t *testing.T) {
	screen := &countingScreen{Screen: tcell.NewSimulationScreen("UTF-8")}

	g, err := Acquire(screen)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if g.Screen() != screen {
		t.Error("Guard should expose the acquired screen")
	}

	g.Release()
	g.Release()

	if screen.finis != 1 {
		t.Errorf("Expected terminal restored exactly once, got %d", screen.finis)
	}
}

func TestGuardReleasesOnPanic(t *testing.T) {
	screen := &countingScreen{Screen: tcell.NewSimulationScreen("UTF-8")}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic to propagate past the guard")
			}
		}()

		g, err := Acquire(screen)
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		defer g.Release()

		panic("boom")
	}()

	if screen.finis != 1 {
		t.Errorf("Expected terminal restored exactly once, got %d", screen.finis)
	}
}
