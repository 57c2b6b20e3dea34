package frame

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dasdy/nuhxboard/logging"
	"github.com/dasdy/nuhxboard/model"
	"github.com/dasdy/nuhxboard/style"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnsupportedElement = errors.New("unsupported element")

var logCtx = logging.PackageCtx("frame")

// Command is a drawing primitive handed to a rendering backend.
type Command interface {
	command()
}

type Fill struct {
	Path  model.Path
	Color colorful.Color
}

type Text struct {
	Position model.Point
	Content  string
	Color    colorful.Color
	Font     style.FontFace
}

func (Fill) command() {}
func (Text) command() {}

type SkippedElement struct {
	ID     model.ElementID
	Kind   model.ElementKind
	Reason error
}

type Frame struct {
	Width      float64
	Height     float64
	Background colorful.Color
	Commands   []Command
	Skipped    []SkippedElement
}

type PressChecker interface {
	IsPressed(code uint32) bool
}

// Assemble walks the configured elements in order and prepares draw commands for each of them.
// Elements that cannot be drawn are skipped and reported in Frame.Skipped.
func Assemble(cfg *model.Config, resolver *style.Resolver, state PressChecker) Frame {
	result := Frame{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: resolver.Style().BackgroundColor.Normalized(),
		Commands:   make([]Command, 0, 2*len(cfg.Elements)),
	}

	for i := range cfg.Elements {
		element := &cfg.Elements[i]

		commands, err := keyCommands(element, resolver, state)
		if err != nil {
			slog.DebugContext(logCtx, "Skipping element",
				"id", element.ID,
				"kind", element.Kind,
				"error", err)

			result.Skipped = append(result.Skipped, SkippedElement{ID: element.ID, Kind: element.Kind, Reason: err})

			continue
		}

		result.Commands = append(result.Commands, commands...)
	}

	return result
}

func keyCommands(element *model.Element, resolver *style.Resolver, state PressChecker) ([]Command, error) {
	if element.Kind != model.KindKeyboardKey {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedElement, element.Kind)
	}

	path, err := model.ToPath(element.Boundaries)
	if err != nil {
		return nil, fmt.Errorf("could not build path: %w", err)
	}

	pressed := state.IsPressed(uint32(element.ID))
	paint := resolver.Resolve(element.ID, pressed)

	return []Command{
		Fill{Path: path, Color: paint.Background.Normalized()},
		Text{
			Position: element.TextPosition,
			Content:  element.Text,
			Color:    paint.Text.Normalized(),
			Font:     paint.Font,
		},
	}, nil
}

// Fills returns only the fill commands, in draw order.
func (f *Frame) Fills() []Fill {
	result := make([]Fill, 0, len(f.Commands)/2)

	for _, c := range f.Commands {
		if fill, ok := c.(Fill); ok {
			result = append(result, fill)
		}
	}

	return result
}

// Texts returns only the text commands, in draw order.
func (f *Frame) Texts() []Text {
	result := make([]Text, 0, len(f.Commands)/2)

	for _, c := range f.Commands {
		if text, ok := c.(Text); ok {
			result = append(result, text)
		}
	}

	return result
}
