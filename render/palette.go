package render

import (
	"github.com/Tk21111/termdraw/config"
	"github.com/gdamore/tcell/v2"
)

// palette maps every PixelColour onto the 16-colour xterm set. Bright
// hues sit on indices 9-15, their dark variants on 1-7.
var palette = [...]tcell.Color{
	config.ColourClear:       tcell.ColorReset,
	config.ColourWhite:       tcell.ColorWhite,
	config.ColourRed:         tcell.ColorRed,
	config.ColourDarkRed:     tcell.ColorMaroon,
	config.ColourBlue:        tcell.ColorBlue,
	config.ColourDarkBlue:    tcell.ColorNavy,
	config.ColourGreen:       tcell.ColorLime,
	config.ColourDarkGreen:   tcell.ColorGreen,
	config.ColourYellow:      tcell.ColorYellow,
	config.ColourDarkYellow:  tcell.ColorOlive,
	config.ColourMagenta:     tcell.ColorFuchsia,
	config.ColourDarkMagenta: tcell.ColorPurple,
	config.ColourGrey:        tcell.ColorSilver,
	config.ColourDarkGrey:    tcell.ColorGray,
	config.ColourBlack:       tcell.ColorBlack,
}

// Resolve returns the terminal colour for c. Colours outside the
// enumeration resolve to the terminal default.
func Resolve(c config.PixelColour) tcell.Color {
	if int(c) >= len(palette) {
		return tcell.ColorReset
	}
	return palette[c]
}
