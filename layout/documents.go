package layout

// Wire formats of the layout and style documents.

type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ColorJSON struct {
	Red   uint8  `json:"red"`
	Green uint8  `json:"green"`
	Blue  uint8  `json:"blue"`
	Alpha *uint8 `json:"alpha,omitempty" jsonschema:"description=Defaults to 255"`
}

type ElementJSON struct {
	Type         string      `json:"type" jsonschema:"enum=KeyboardKey,enum=MouseKey,enum=MouseScroll,enum=MouseSpeedIndicator"`
	ID           uint32      `json:"id"`
	Text         string      `json:"text,omitempty"`
	TextPosition PointJSON   `json:"text_position"`
	Boundaries   []PointJSON `json:"boundaries,omitempty"`
}

type LayoutJSON struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Elements []ElementJSON `json:"elements"`
}

type FontJSON struct {
	FontFamily string  `json:"font_family"`
	Size       float64 `json:"size"`
	Style      uint8   `json:"style" jsonschema:"description=Bit 0 bold; bit 1 expanded"`
}

type StateStyleJSON struct {
	Background ColorJSON `json:"background"`
	Text       ColorJSON `json:"text"`
	Font       FontJSON  `json:"font"`
}

type KeyStyleJSON struct {
	Loose   StateStyleJSON `json:"loose"`
	Pressed StateStyleJSON `json:"pressed"`
}

// ElementStyleValueJSON is an externally tagged union; exactly one member is expected.
type ElementStyleValueJSON struct {
	KeyStyle                 *KeyStyleJSON  `json:"KeyStyle,omitempty"`
	MouseSpeedIndicatorStyle map[string]any `json:"MouseSpeedIndicatorStyle,omitempty"`
}

type ElementStyleJSON struct {
	Key   uint32                `json:"key"`
	Value ElementStyleValueJSON `json:"value"`
}

type StyleJSON struct {
	BackgroundColor ColorJSON          `json:"background_color"`
	DefaultKeyStyle *KeyStyleJSON      `json:"default_key_style"`
	ElementStyles   []ElementStyleJSON `json:"element_styles,omitempty"`
}
