package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type PixelColour uint8

const (
	ColourClear PixelColour = iota
	ColourWhite
	ColourRed
	ColourDarkRed
	ColourBlue
	ColourDarkBlue
	ColourGreen
	ColourDarkGreen
	ColourYellow
	ColourDarkYellow
	ColourMagenta
	ColourDarkMagenta
	ColourGrey
	ColourDarkGrey
	ColourBlack

	colourCount
)

func (c PixelColour) Valid() bool {
	return c < colourCount
}

func (c PixelColour) String() string {
	if !c.Valid() {
		return fmt.Sprintf("PixelColour(%d)", uint8(c))
	}
	return colourNames[c]
}

func (c PixelColour) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown pixel colour %d", uint8(c))
	}
	return []byte(colourNames[c]), nil
}

func (c *PixelColour) UnmarshalText(b []byte) error {
	parsed, err := ParseColour(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Pixel is positional: a later pixel at the same X/Y replaces an earlier one.
type Pixel struct {
	X      uint32      `json:"x"`
	Y      uint32      `json:"y"`
	Colour PixelColour `json:"colour"`
}

// UnmarshalJSON requires every field; a missing one would otherwise read
// as a Clear pixel at the origin.
func (p *Pixel) UnmarshalJSON(b []byte) error {
	var raw struct {
		X      *uint32      `json:"x"`
		Y      *uint32      `json:"y"`
		Colour *PixelColour `json:"colour"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.X == nil || raw.Y == nil || raw.Colour == nil {
		return errors.New("pixel requires x, y and colour")
	}
	*p = Pixel{X: *raw.X, Y: *raw.Y, Colour: *raw.Colour}
	return nil
}

type Room struct {
	ID     uuid.UUID `json:"id"`
	Pixels []Pixel   `json:"pixels"`
}
