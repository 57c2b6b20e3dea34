package model

import (
	"fmt"
	"time"
)

// ElementID identifies an element on the board. It doubles as the key code that presses it.
type ElementID uint32

type ElementKind int

const (
	KindKeyboardKey ElementKind = iota
	KindMouseKey
	KindMouseScroll
	KindMouseSpeedIndicator
)

var kindNames = map[ElementKind]string{
	KindKeyboardKey:         "KeyboardKey",
	KindMouseKey:            "MouseKey",
	KindMouseScroll:         "MouseScroll",
	KindMouseSpeedIndicator: "MouseSpeedIndicator",
}

func (k ElementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ElementKind(%d)", int(k))
}

func ParseElementKind(name string) (ElementKind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("unknown element type %q", name)
}

type Element struct {
	Kind         ElementKind
	ID           ElementID
	Text         string
	TextPosition Point
	Boundaries   []Point
}

type Config struct {
	Width    float64
	Height   float64
	Elements []Element
}

type KeyEvent struct {
	Code    uint32
	Pressed bool
}

type KeyEventWithTimestamp struct {
	KeyEvent
	Timestamp time.Time
}
