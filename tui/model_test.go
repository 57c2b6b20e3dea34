package tui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dasdy/nuhxboard/board"
	"github.com/dasdy/nuhxboard/model"
	"github.com/dasdy/nuhxboard/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(id uint32, text string, x, y float64) model.Element {
	return model.Element{
		Kind:         model.KindKeyboardKey,
		ID:           model.ElementID(id),
		Text:         text,
		TextPosition: model.Point{X: x + 2, Y: y + 8},
		Boundaries:   []model.Point{{X: x, Y: y}, {X: x + 10, Y: y}, {X: x + 10, Y: y + 10}, {X: x, Y: y + 10}},
	}
}

func testBoard() *board.Board {
	cfg := &model.Config{
		Width:  40,
		Height: 30,
		Elements: []model.Element{
			key(3, "E", 10, 15),
			key(2, "W", 20, 0),
			key(1, "Q", 0, 0),
			key(4, "R", 0, 15),
		},
	}

	loose := model.StateStyle{Background: model.RGB(200, 200, 200), Text: model.RGB(0, 0, 0), Font: model.Font{Family: "Mono", Size: 10}}
	pressed := model.StateStyle{Background: model.RGB(100, 100, 100), Text: model.RGB(255, 255, 255), Font: model.Font{Family: "Mono", Size: 10, Style: model.FontStyleBold}}

	return board.New(cfg, &model.Style{DefaultKeyStyle: model.KeyStyle{Loose: loose, Pressed: pressed}})
}

func labels(cells []tui.Cell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Label)
	}

	return out
}

func TestCells(t *testing.T) {
	b := testBoard()

	t.Run("orders keys by row then column", func(t *testing.T) {
		f := b.Frame()
		cells := tui.Cells(&f)

		assert.Equal(t, []string{"Q", "W", "R", "E"}, labels(cells))
		assert.Equal(t, cells[0].Row, cells[1].Row)
		assert.Less(t, cells[1].Row, cells[2].Row)
	})

	t.Run("pressed keys take pressed colors", func(t *testing.T) {
		b.HandleEvent(model.KeyEvent{Code: 2, Pressed: true})

		f := b.Frame()
		cells := tui.Cells(&f)

		require.Len(t, cells, 4)
		assert.Equal(t, "#c8c8c8", cells[0].Background)
		assert.False(t, cells[0].Bold)
		assert.Equal(t, "#646464", cells[1].Background)
		assert.Equal(t, "#ffffff", cells[1].Foreground)
		assert.True(t, cells[1].Bold)
	})
}

func TestModelUpdate(t *testing.T) {
	t.Run("quits on q", func(t *testing.T) {
		m := tui.NewModel(testBoard(), "nuhxboard")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("r releases all keys", func(t *testing.T) {
		b := testBoard()
		b.HandleEvent(model.KeyEvent{Code: 1, Pressed: true})

		m := tui.NewModel(b, "nuhxboard")
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

		assert.Empty(t, b.State.Pressed())
	})

	t.Run("redraw waits for board changes", func(t *testing.T) {
		b := testBoard()
		m := tui.NewModel(b, "nuhxboard")

		cmd := m.Init()
		require.NotNil(t, cmd)

		b.HandleEvent(model.KeyEvent{Code: 4, Pressed: true})

		_, next := m.Update(cmd())
		assert.NotNil(t, next)
	})
}

func TestView(t *testing.T) {
	m := tui.NewModel(testBoard(), "nuhxboard")

	view := m.View()

	assert.Contains(t, view, "nuhxboard")
	assert.Contains(t, view, "Q")
	assert.Contains(t, view, "E")
	assert.Contains(t, view, "q: quit")
}
