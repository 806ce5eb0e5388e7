package config

import "fmt"

var colourNames = [colourCount]string{
	ColourClear:       "Clear",
	ColourWhite:       "White",
	ColourRed:         "Red",
	ColourDarkRed:     "DarkRed",
	ColourBlue:        "Blue",
	ColourDarkBlue:    "DarkBlue",
	ColourGreen:       "Green",
	ColourDarkGreen:   "DarkGreen",
	ColourYellow:      "Yellow",
	ColourDarkYellow:  "DarkYellow",
	ColourMagenta:     "Magenta",
	ColourDarkMagenta: "DarkMagenta",
	ColourGrey:        "Grey",
	ColourDarkGrey:    "DarkGrey",
	ColourBlack:       "Black",
}

func ParseColour(name string) (PixelColour, error) {
	for i, n := range colourNames {
		if n == name {
			return PixelColour(i), nil
		}
	}
	return ColourClear, fmt.Errorf("unknown pixel colour %q", name)
}

// Colours lists every colour in declaration order, Clear first.
func Colours() []PixelColour {
	out := make([]PixelColour, 0, colourCount)
	for c := ColourClear; c < colourCount; c++ {
		out = append(out, c)
	}
	return out
}
