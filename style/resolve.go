package style

import (
	"github.com/dasdy/nuhxboard/model"
)

// FontFace is a fully decoded font for one element in one state.
type FontFace struct {
	Family  string
	Weight  model.Weight
	Stretch model.Stretch
	Size    float64
}

// Paint holds everything needed to draw one element on the current frame.
type Paint struct {
	Background model.Color
	Text       model.Color
	Font       FontFace
}

// Lookup returns the first override for id in insertion order, or the default key style.
func Lookup(id model.ElementID, doc *model.Style) *model.KeyStyle {
	for i := range doc.ElementStyles {
		if doc.ElementStyles[i].Key == id {
			return &doc.ElementStyles[i].Value
		}
	}

	return &doc.DefaultKeyStyle
}

// Resolve computes paint parameters for one element without building an index.
// Font size always comes from the loose state, pressed or not.
func Resolve(id model.ElementID, pressed bool, doc *model.Style) Paint {
	return paintFor(Lookup(id, doc), pressed, false)
}

func paintFor(keyStyle *model.KeyStyle, pressed, sizeFromState bool) Paint {
	state := keyStyle.State(pressed)

	size := keyStyle.Loose.Font.Size
	if sizeFromState {
		size = state.Font.Size
	}

	return Paint{
		Background: state.Background,
		Text:       state.Text,
		Font: FontFace{
			Family:  state.Font.Family,
			Weight:  state.Font.Style.Weight(),
			Stretch: state.Font.Style.Stretch(),
			Size:    size,
		},
	}
}
