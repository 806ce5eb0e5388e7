package render

import (
	"errors"

	"github.com/Tk21111/termdraw/config"
	"github.com/gdamore/tcell/v2"
)

var ErrRender = errors.New("terminal render failed")

// Renderer paints pixels straight onto the screen; the screen is the
// canvas and there is no shadow copy. Draw and Clear may be called from
// the input loop and the inbound processor at the same time: each cell
// write is a single SetContent, which tcell serialises.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw paints one pixel and flushes.
func (r *Renderer) Draw(p config.Pixel) {
	r.paint(p)
	r.screen.Show()
}

// DrawAll paints pixels in order and flushes once, so a later pixel at
// the same position wins.
func (r *Renderer) DrawAll(pixels []config.Pixel) {
	if len(pixels) == 0 {
		return
	}
	for _, p := range pixels {
		r.paint(p)
	}
	r.screen.Show()
}

// Clear resets the whole canvas to the background.
func (r *Renderer) Clear() {
	r.screen.Clear()
	r.screen.Show()
}

// Sync repaints the physical terminal from tcell's buffer, used after a
// resize.
func (r *Renderer) Sync() {
	r.screen.Sync()
}

func (r *Renderer) paint(p config.Pixel) {
	style := tcell.StyleDefault.Background(Resolve(p.Colour))
	r.screen.SetContent(int(p.X), int(p.Y), ' ', nil, style)
}
