package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dasdy/nuhxboard/logging"
	"github.com/dasdy/nuhxboard/model"
)

var ErrValidation = errors.New("invalid document")

var logCtx = logging.PackageCtx("layout")

const minBoundaryPoints = 3

func LoadConfig(reader io.Reader) (*model.Config, error) {
	var doc LayoutJSON

	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode layout JSON: %w", err)
	}

	return doc.toModel()
}

func LoadStyle(reader io.Reader) (*model.Style, error) {
	var doc StyleJSON

	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode style JSON: %w", err)
	}

	return doc.toModel()
}

// LoadFiles opens and validates both documents.
func LoadFiles(configPath, stylePath string) (*model.Config, *model.Style, error) {
	configFile, err := OpenPath(configPath)
	if err != nil {
		return nil, nil, err
	}
	defer configFile.Close()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load layout %s: %w", configPath, err)
	}

	styleFile, err := OpenPath(stylePath)
	if err != nil {
		return nil, nil, err
	}
	defer styleFile.Close()

	doc, err := LoadStyle(styleFile)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load style %s: %w", stylePath, err)
	}

	return cfg, doc, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func (p PointJSON) toModel() model.Point {
	return model.Point{X: p.X, Y: p.Y}
}

func (c ColorJSON) toModel() model.Color {
	alpha := uint8(255)
	if c.Alpha != nil {
		alpha = *c.Alpha
	}

	return model.Color{Red: c.Red, Green: c.Green, Blue: c.Blue, Alpha: alpha}
}

func (d *LayoutJSON) toModel() (*model.Config, error) {
	var problems []error

	if d.Width <= 0 || d.Height <= 0 {
		problems = append(problems, invalid("canvas size must be positive, got %vx%v", d.Width, d.Height))
	}

	seen := make(map[uint32]bool, len(d.Elements))
	elements := make([]model.Element, 0, len(d.Elements))

	for i, e := range d.Elements {
		kind, err := model.ParseElementKind(e.Type)
		if err != nil {
			problems = append(problems, invalid("element #%d: %s", i, err))

			continue
		}

		if seen[e.ID] {
			problems = append(problems, invalid("element #%d: duplicate id %d", i, e.ID))

			continue
		}

		seen[e.ID] = true

		if kind == model.KindKeyboardKey && len(e.Boundaries) < minBoundaryPoints {
			problems = append(problems, invalid("element %d has %d boundary points, need at least %d",
				e.ID, len(e.Boundaries), minBoundaryPoints))

			continue
		}

		boundaries := make([]model.Point, len(e.Boundaries))
		for j, p := range e.Boundaries {
			boundaries[j] = p.toModel()
		}

		elements = append(elements, model.Element{
			Kind:         kind,
			ID:           model.ElementID(e.ID),
			Text:         e.Text,
			TextPosition: e.TextPosition.toModel(),
			Boundaries:   boundaries,
		})
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}

	return &model.Config{Width: d.Width, Height: d.Height, Elements: elements}, nil
}

func (s *StateStyleJSON) toModel() model.StateStyle {
	return model.StateStyle{
		Background: s.Background.toModel(),
		Text:       s.Text.toModel(),
		Font: model.Font{
			Family: s.Font.FontFamily,
			Size:   s.Font.Size,
			Style:  model.FontStyle(s.Font.Style),
		},
	}
}

func (k *KeyStyleJSON) toModel() model.KeyStyle {
	return model.KeyStyle{Loose: k.Loose.toModel(), Pressed: k.Pressed.toModel()}
}

func (d *StyleJSON) toModel() (*model.Style, error) {
	if d.DefaultKeyStyle == nil {
		return nil, invalid("default_key_style is required")
	}

	result := &model.Style{
		BackgroundColor: d.BackgroundColor.toModel(),
		DefaultKeyStyle: d.DefaultKeyStyle.toModel(),
		ElementStyles:   make([]model.ElementStyle, 0, len(d.ElementStyles)),
	}

	seen := make(map[uint32]bool, len(d.ElementStyles))

	for _, es := range d.ElementStyles {
		if es.Value.KeyStyle == nil {
			slog.WarnContext(logCtx, "Dropping element style that is not a key style", "key", es.Key)

			continue
		}

		if seen[es.Key] {
			slog.WarnContext(logCtx, "Duplicate element style, the first one is used", "key", es.Key)
		}

		seen[es.Key] = true

		result.ElementStyles = append(result.ElementStyles, model.ElementStyle{
			Key:   model.ElementID(es.Key),
			Value: es.Value.KeyStyle.toModel(),
		})
	}

	return result, nil
}
