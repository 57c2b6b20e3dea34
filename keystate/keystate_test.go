package keystate_test

import (
	"sync"
	"testing"

	"github.com/dasdy/nuhxboard/keystate"
	"github.com/dasdy/nuhxboard/model"
	"github.com/stretchr/testify/assert"
)

func TestPressState(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		state := keystate.New()

		assert.False(t, state.IsPressed(5))
		assert.Empty(t, state.Pressed())
	})

	t.Run("key down is idempotent", func(t *testing.T) {
		state := keystate.New()

		assert.True(t, state.KeyDown(5))
		assert.False(t, state.KeyDown(5))
		assert.True(t, state.IsPressed(5))

		assert.True(t, state.KeyUp(5))
		assert.False(t, state.IsPressed(5))

		assert.False(t, state.KeyUp(5))
		assert.False(t, state.IsPressed(5))
	})

	t.Run("apply follows event direction", func(t *testing.T) {
		state := keystate.New()

		assert.True(t, state.Apply(model.KeyEvent{Code: 3, Pressed: true}))
		assert.True(t, state.Apply(model.KeyEvent{Code: 1, Pressed: true}))
		assert.Equal(t, []uint32{1, 3}, state.Pressed())

		assert.True(t, state.Apply(model.KeyEvent{Code: 3, Pressed: false}))
		assert.Equal(t, []uint32{1}, state.Pressed())
	})

	t.Run("reset clears everything", func(t *testing.T) {
		state := keystate.New()
		state.KeyDown(1)
		state.KeyDown(2)

		state.Reset()

		assert.Empty(t, state.Pressed())
	})
}

func TestPressStateConcurrentAccess(t *testing.T) {
	state := keystate.New()

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			for range 100 {
				state.KeyDown(uint32(i))
				state.KeyUp(uint32(i))
			}
		}()

		go func() {
			defer wg.Done()

			for range 100 {
				_ = state.IsPressed(uint32(i))
				_ = state.Pressed()
			}
		}()
	}

	wg.Wait()

	assert.Empty(t, state.Pressed())
}

func TestSnapshot(t *testing.T) {
	s := keystate.New()
	s.KeyDown(1)
	s.KeyDown(2)

	snap := s.Snapshot()

	s.KeyUp(1)
	s.KeyDown(3)

	assert.True(t, snap.IsPressed(1))
	assert.True(t, snap.IsPressed(2))
	assert.False(t, snap.IsPressed(3))
	assert.Len(t, snap, 2)

	assert.False(t, s.Snapshot().IsPressed(1))
}
