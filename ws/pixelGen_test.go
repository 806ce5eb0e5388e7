package ws

import (
	"testing"

	"github.com/Tk21111/termdraw/config"
)

func TestRandomStroke(t *testing.T) {
	for range 100 {
		stroke := RandomStroke(10, 4, 20, config.ColourGreen)
		if len(stroke) != 20 {
			t.Fatalf("Expected 20 pixels, got %d", len(stroke))
		}

		for i, p := range stroke {
			if p.X >= 10 || p.Y >= 4 {
				t.Fatalf("Pixel %+v outside 10x4", p)
			}
			if p.Colour != config.ColourGreen {
				t.Fatalf("Unexpected colour %v", p.Colour)
			}
			if i == 0 {
				continue
			}
			prev := stroke[i-1]
			if absDiff(p.X, prev.X) > 1 || absDiff(p.Y, prev.Y) > 1 {
				t.Fatalf("Stroke jumped from %+v to %+v", prev, p)
			}
		}
	}
}

func TestRandomStrokeEmpty(t *testing.T) {
	if s := RandomStroke(10, 10, 0, config.ColourRed); s != nil {
		t.Errorf("Expected nil, got %v", s)
	}
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
