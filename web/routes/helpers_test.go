package routes_test

import (
	"github.com/dasdy/nuhxboard/board"
	"github.com/dasdy/nuhxboard/model"
)

const (
	keyA uint32 = 38
	keyS uint32 = 39
)

func stateStyle(bg uint8, size float64) model.StateStyle {
	return model.StateStyle{
		Background: model.RGB(bg, bg, bg),
		Text:       model.RGB(0, 0, 0),
		Font:       model.Font{Family: "Courier New", Size: size},
	}
}

func square(x float64) []model.Point {
	return []model.Point{{X: x, Y: 0}, {X: x + 10, Y: 0}, {X: x + 10, Y: 10}, {X: x, Y: 10}}
}

// createTestBoard builds a two key board: loose keys are #c8c8c8, pressed ones #646464.
func createTestBoard() *board.Board {
	cfg := &model.Config{
		Width:  30,
		Height: 10,
		Elements: []model.Element{
			{Kind: model.KindKeyboardKey, ID: model.ElementID(keyA), Text: "A", TextPosition: model.Point{X: 2, Y: 8}, Boundaries: square(0)},
			{Kind: model.KindKeyboardKey, ID: model.ElementID(keyS), Text: "S", TextPosition: model.Point{X: 17, Y: 8}, Boundaries: square(15)},
		},
	}

	doc := &model.Style{
		BackgroundColor: model.RGB(30, 30, 30),
		DefaultKeyStyle: model.KeyStyle{
			Loose:   stateStyle(200, 12),
			Pressed: stateStyle(100, 12),
		},
	}

	return board.New(cfg, doc)
}
