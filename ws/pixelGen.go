package ws

import (
	"math/rand/v2"

	"github.com/Tk21111/termdraw/config"
)

func RandomPixel(width, height int, colour config.PixelColour) config.Pixel {
	return config.Pixel{
		X:      uint32(rand.IntN(max(width, 1))),
		Y:      uint32(rand.IntN(max(height, 1))),
		Colour: colour,
	}
}

// RandomStroke imitates a mouse drag: n pixels, each one step away from
// the last, clamped to the canvas.
func RandomStroke(width, height, n int, colour config.PixelColour) []config.Pixel {
	if n <= 0 {
		return nil
	}

	stroke := make([]config.Pixel, 0, n)
	p := RandomPixel(width, height, colour)
	stroke = append(stroke, p)

	for i := 1; i < n; i++ {
		p.X = step(p.X, width)
		p.Y = step(p.Y, height)
		stroke = append(stroke, p)
	}
	return stroke
}

func step(v uint32, limit int) uint32 {
	next := int(v) + rand.IntN(3) - 1
	if next < 0 {
		next = 0
	}
	if next >= limit {
		next = max(limit-1, 0)
	}
	return uint32(next)
}
