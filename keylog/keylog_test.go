package keylog_test

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/dasdy/nuhxboard/db"
	"github.com/dasdy/nuhxboard/keylog"
	"github.com/dasdy/nuhxboard/keylog/parser"
	"github.com/dasdy/nuhxboard/keystate"
	"github.com/dasdy/nuhxboard/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	state  *keystate.PressState
	events []model.KeyEvent
}

func (s *recordingSink) HandleEvent(event model.KeyEvent) bool {
	s.events = append(s.events, event)

	return s.state.Apply(event)
}

// SimpleStorageMock is a manual mock of db.Storage.
type SimpleStorageMock struct {
	Stored     []model.KeyEvent
	Items      []model.KeyEventWithTimestamp
	StoreError error
}

func (m *SimpleStorageMock) Store(event *model.KeyEvent) error {
	m.Stored = append(m.Stored, *event)

	return m.StoreError
}

func (m *SimpleStorageMock) AllIterator() (iter.Seq[model.KeyEventWithTimestamp], error) {
	return func(yield func(model.KeyEventWithTimestamp) bool) {
		for _, item := range m.Items {
			if !yield(item) {
				return
			}
		}
	}, nil
}

func (m *SimpleStorageMock) Count() (int, error) {
	return len(m.Items), nil
}

func (m *SimpleStorageMock) Close() {}

func feed(lines ...string) <-chan string {
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}

	close(ch)

	return ch
}

func TestKeyLogLoop(t *testing.T) {
	t.Run("applies xinput events and records them", func(t *testing.T) {
		sink := &recordingSink{state: keystate.New()}
		storage := &SimpleStorageMock{}

		err := keylog.KeyLogLoop(context.Background(), feed(
			"EVENT type 2 (KeyPress)",
			"    detail: 38",
			"EVENT type 2 (KeyPress)",
			"    detail: 39",
			"EVENT type 3 (KeyRelease)",
			"    detail: 38",
		), &parser.XInputParser{}, sink, storage, true)

		require.NoError(t, err)
		assert.Equal(t, []uint32{39}, sink.state.Pressed())
		assert.Len(t, storage.Stored, 3)
	})

	t.Run("skips bad lines and tolerates storage errors", func(t *testing.T) {
		sink := &recordingSink{state: keystate.New()}
		storage := &SimpleStorageMock{StoreError: errors.New("disk full")}

		err := keylog.KeyLogLoop(context.Background(), feed(
			"Row: 1, col: 1, position: x, pressed: true",
			"[dbg] zmk: Row: 1, col: 2, position: 12, pressed: true",
		), parser.ZMKParser{}, sink, storage, false)

		require.NoError(t, err)
		assert.Equal(t, []model.KeyEvent{{Code: 12, Pressed: true}}, sink.events)
	})

	t.Run("works without storage", func(t *testing.T) {
		sink := &recordingSink{state: keystate.New()}

		err := keylog.KeyLogLoop(context.Background(), feed(
			"EVENT type 2 (KeyPress)",
			"    detail: 10",
		), &parser.XInputParser{}, sink, nil, false)

		require.NoError(t, err)
		assert.True(t, sink.state.IsPressed(10))
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := keylog.KeyLogLoop(ctx, make(chan string), &parser.XInputParser{}, &recordingSink{state: keystate.New()}, nil, false)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestReplay(t *testing.T) {
	start := time.Now()

	t.Run("replays events in order without delay", func(t *testing.T) {
		storage := &SimpleStorageMock{Items: []model.KeyEventWithTimestamp{
			{KeyEvent: model.KeyEvent{Code: 1, Pressed: true}, Timestamp: start},
			{KeyEvent: model.KeyEvent{Code: 2, Pressed: true}, Timestamp: start.Add(time.Hour)},
			{KeyEvent: model.KeyEvent{Code: 1, Pressed: false}, Timestamp: start.Add(2 * time.Hour)},
		}}
		sink := &recordingSink{state: keystate.New()}

		require.NoError(t, keylog.Replay(context.Background(), storage, sink, 0))

		assert.Len(t, sink.events, 3)
		assert.Equal(t, []uint32{2}, sink.state.Pressed())
	})

	t.Run("honours cancellation while waiting", func(t *testing.T) {
		storage := &SimpleStorageMock{Items: []model.KeyEventWithTimestamp{
			{KeyEvent: model.KeyEvent{Code: 1, Pressed: true}, Timestamp: start},
			{KeyEvent: model.KeyEvent{Code: 1, Pressed: false}, Timestamp: start.Add(time.Hour)},
		}}
		sink := &recordingSink{state: keystate.New()}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := keylog.Replay(ctx, storage, sink, 1)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Len(t, sink.events, 1)
	})

	t.Run("replays from sqlite", func(t *testing.T) {
		storage, err := db.NewStorageFromPath(":memory:")
		require.NoError(t, err)

		defer storage.Close()

		require.NoError(t, storage.StoreAt(&model.KeyEvent{Code: 7, Pressed: true}, start))
		require.NoError(t, storage.StoreAt(&model.KeyEvent{Code: 7, Pressed: false}, start.Add(10*time.Millisecond)))

		sink := &recordingSink{state: keystate.New()}

		require.NoError(t, keylog.Replay(context.Background(), storage, sink, 10))
		assert.Equal(t, []model.KeyEvent{{Code: 7, Pressed: true}, {Code: 7, Pressed: false}}, sink.events)
	})
}
