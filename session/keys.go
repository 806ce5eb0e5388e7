package session

import (
	"github.com/Tk21111/termdraw/config"
	"github.com/gdamore/tcell/v2"
)

type shades struct {
	bright config.PixelColour
	dark   config.PixelColour
}

// Digit keys pick a hue; Alt picks its dark shade. White and Black have
// no dark shade, so Alt changes nothing for them.
var colourKeys = map[rune]shades{
	'1': {config.ColourWhite, config.ColourWhite},
	'2': {config.ColourRed, config.ColourDarkRed},
	'3': {config.ColourBlue, config.ColourDarkBlue},
	'4': {config.ColourGreen, config.ColourDarkGreen},
	'5': {config.ColourYellow, config.ColourDarkYellow},
	'6': {config.ColourMagenta, config.ColourDarkMagenta},
	'7': {config.ColourGrey, config.ColourDarkGrey},
	'8': {config.ColourBlack, config.ColourBlack},
}

// ColourForKey maps a key press to a colour selection.
func ColourForKey(ev *tcell.EventKey) (config.PixelColour, bool) {
	if ev.Key() != tcell.KeyRune {
		return config.ColourClear, false
	}
	s, ok := colourKeys[ev.Rune()]
	if !ok {
		return config.ColourClear, false
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		return s.dark, true
	}
	return s.bright, true
}

func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		return ev.Rune() == 'c' || ev.Rune() == 'C'
	}
	return ev.Rune() == 'q'
}

func isClear(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlL {
		return true
	}
	return ev.Key() == tcell.KeyRune &&
		(ev.Rune() == 'l' || ev.Rune() == 'L') &&
		ev.Modifiers()&tcell.ModCtrl != 0
}

// paintButtons are the buttons that draw; wheel motion does not.
const paintButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// erases reports whether a held-button mask paints Clear.
func erases(buttons tcell.ButtonMask) bool {
	return buttons&tcell.Button2 != 0
}
