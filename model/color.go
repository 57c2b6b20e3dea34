package model

import "github.com/lucasb-eyer/go-colorful"

type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha uint8
}

func RGB(r, g, b uint8) Color {
	return Color{Red: r, Green: g, Blue: b, Alpha: 255}
}

// Normalize maps a 0-255 channel onto 0.0-1.0.
func Normalize(channel uint8) float64 {
	return float64(channel) / 255.0
}

// Normalized drops alpha: paint output is RGB only.
func (c Color) Normalized() colorful.Color {
	return colorful.Color{
		R: Normalize(c.Red),
		G: Normalize(c.Green),
		B: Normalize(c.Blue),
	}
}

func (c Color) Hex() string {
	return c.Normalized().Hex()
}
