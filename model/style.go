package model

// FontStyle is a packed bit field. Bits other than bold and expanded are reserved.
type FontStyle uint8

const (
	FontStyleBold     FontStyle = 0b00000001
	FontStyleExpanded FontStyle = 0b00000010
)

type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}

	return "normal"
}

type Stretch int

const (
	StretchNormal Stretch = iota
	StretchExpanded
)

func (s Stretch) String() string {
	if s == StretchExpanded {
		return "expanded"
	}

	return "normal"
}

func (f FontStyle) Weight() Weight {
	if f&FontStyleBold != 0 {
		return WeightBold
	}

	return WeightNormal
}

func (f FontStyle) Stretch() Stretch {
	if f&FontStyleExpanded != 0 {
		return StretchExpanded
	}

	return StretchNormal
}

type Font struct {
	Family string
	Size   float64
	Style  FontStyle
}

// StateStyle holds the paint parameters of a single key state.
type StateStyle struct {
	Background Color
	Text       Color
	Font       Font
}

type KeyStyle struct {
	Loose   StateStyle
	Pressed StateStyle
}

func (k *KeyStyle) State(pressed bool) *StateStyle {
	if pressed {
		return &k.Pressed
	}

	return &k.Loose
}

// ElementStyle overrides the default key style for one element.
type ElementStyle struct {
	Key   ElementID
	Value KeyStyle
}

// Style is loaded once and never mutated afterwards.
type Style struct {
	BackgroundColor Color
	DefaultKeyStyle KeyStyle
	ElementStyles   []ElementStyle
}
