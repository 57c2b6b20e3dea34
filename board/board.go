package board

import (
	"log/slog"
	"sync"

	"github.com/dasdy/nuhxboard/frame"
	"github.com/dasdy/nuhxboard/keystate"
	"github.com/dasdy/nuhxboard/logging"
	"github.com/dasdy/nuhxboard/model"
	"github.com/dasdy/nuhxboard/style"
)

var logCtx = logging.PackageCtx("board")

// Board ties the loaded documents to the live press state.
// Config and Style are read-only after construction; only the press state changes.
type Board struct {
	Config   *model.Config
	Style    *model.Style
	Resolver *style.Resolver
	State    *keystate.PressState

	// Elements that never make it into a frame; the layout does not change, so neither does this list.
	Skipped []frame.SkippedElement

	subscribers map[int]chan struct{}
	nextID      int
	subsLock    sync.Mutex
}

func New(cfg *model.Config, doc *model.Style, opts ...style.Option) *Board {
	b := &Board{
		Config:      cfg,
		Style:       doc,
		Resolver:    style.NewResolver(doc, opts...),
		State:       keystate.New(),
		subscribers: make(map[int]chan struct{}),
	}

	b.Skipped = b.Frame().Skipped
	for _, skipped := range b.Skipped {
		slog.WarnContext(logCtx, "Element will not be drawn",
			"id", skipped.ID,
			"kind", skipped.Kind,
			"error", skipped.Reason)
	}

	return b
}

// HandleEvent applies a key event and notifies subscribers when the pressed set changed.
func (b *Board) HandleEvent(event model.KeyEvent) bool {
	changed := b.State.Apply(event)
	if changed {
		b.notify()
	}

	return changed
}

func (b *Board) Reset() {
	b.State.Reset()
	b.notify()
}

// Frame draws the board as it is right now, all keys read from the same press state.
func (b *Board) Frame() frame.Frame {
	return frame.Assemble(b.Config, b.Resolver, b.State.Snapshot())
}

// Subscribe returns a channel that receives a value whenever a redraw is due.
// Notifications coalesce, so a slow reader only sees the latest pending one.
func (b *Board) Subscribe() (<-chan struct{}, func()) {
	b.subsLock.Lock()
	defer b.subsLock.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan struct{}, 1)
	b.subscribers[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			b.subsLock.Lock()
			defer b.subsLock.Unlock()

			delete(b.subscribers, id)
			close(ch)
		})
	}
}

func (b *Board) notify() {
	b.subsLock.Lock()
	defer b.subsLock.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
