package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// OpenScreen allocates the terminal screen without touching terminal
// modes yet.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: open screen: %v", ErrRender, err)
	}
	return screen, nil
}

// Guard owns raw mode and mouse capture for as long as the canvas is up.
// Release must run on every exit path; it is safe to call more than once.
type Guard struct {
	screen tcell.Screen
	once   sync.Once
}

// Acquire switches the terminal into canvas mode: raw input, mouse
// capture for clicks and drags, hidden cursor, empty screen.
func Acquire(screen tcell.Screen) (*Guard, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: init screen: %v", ErrRender, err)
	}

	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	screen.Show()

	return &Guard{screen: screen}, nil
}

func (g *Guard) Screen() tcell.Screen {
	return g.screen
}

// Release leaves the terminal as it was found: mouse capture off, screen
// cleared, cursor shown, cooked mode restored.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.screen.DisableMouse()
		g.screen.Clear()
		g.screen.Show()
		g.screen.Fini()
	})
}
