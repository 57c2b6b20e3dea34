package model_test

import (
	"testing"

	"github.com/dasdy/nuhxboard/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPath(t *testing.T) {
	t.Run("closes square back to the start", func(t *testing.T) {
		path, err := model.ToPath([]model.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
		require.NoError(t, err)

		edges := path.Edges()

		require.Len(t, edges, 4)
		assert.Equal(t, model.Segment{From: model.Point{X: 0, Y: 0}, To: model.Point{X: 10, Y: 0}}, edges[0])
		assert.Equal(t, model.Segment{From: model.Point{X: 0, Y: 10}, To: model.Point{X: 0, Y: 0}}, edges[3])
		assert.Equal(t, model.Point{X: 0, Y: 0}, path.Start())
	})

	t.Run("single point is a zero-length path", func(t *testing.T) {
		path, err := model.ToPath([]model.Point{{X: 3, Y: 4}})
		require.NoError(t, err)

		edges := path.Edges()

		require.Len(t, edges, 1)
		assert.Equal(t, edges[0].From, edges[0].To)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := model.ToPath(nil)

		require.ErrorIs(t, err, model.ErrEmptyPath)
	})

	t.Run("does not alias caller points", func(t *testing.T) {
		points := []model.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 1}}
		path, err := model.ToPath(points)
		require.NoError(t, err)

		points[0].X = 100

		assert.InDelta(t, 1.0, path.Start().X, 1e-9)
	})
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 0.0, model.Normalize(0), 1e-9)
	assert.InDelta(t, 1.0, model.Normalize(255), 1e-9)
	assert.InDelta(t, 0.50196, model.Normalize(128), 1e-5)
}

func TestColorNormalized(t *testing.T) {
	c := model.Color{Red: 200, Green: 100, Blue: 0, Alpha: 10}.Normalized()

	assert.InDelta(t, 0.784, c.R, 1e-3)
	assert.InDelta(t, 0.392, c.G, 1e-3)
	assert.InDelta(t, 0.0, c.B, 1e-9)
	assert.Equal(t, "#c86400", model.RGB(200, 100, 0).Hex())
}

func TestFontStyleDecoding(t *testing.T) {
	testCases := []struct {
		style   model.FontStyle
		weight  model.Weight
		stretch model.Stretch
	}{
		{0b00000000, model.WeightNormal, model.StretchNormal},
		{0b00000001, model.WeightBold, model.StretchNormal},
		{0b00000010, model.WeightNormal, model.StretchExpanded},
		{0b00000011, model.WeightBold, model.StretchExpanded},
		{0b11111100, model.WeightNormal, model.StretchNormal},
	}

	for _, tc := range testCases {
		t.Run(tc.weight.String()+"/"+tc.stretch.String(), func(t *testing.T) {
			assert.Equal(t, tc.weight, tc.style.Weight())
			assert.Equal(t, tc.stretch, tc.style.Stretch())
		})
	}
}

func TestParseElementKind(t *testing.T) {
	kind, err := model.ParseElementKind("MouseScroll")
	require.NoError(t, err)
	assert.Equal(t, model.KindMouseScroll, kind)
	assert.Equal(t, "MouseScroll", kind.String())

	_, err = model.ParseElementKind("Joystick")
	require.Error(t, err)
}
