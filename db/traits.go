package db

import (
	"iter"

	"github.com/dasdy/nuhxboard/model"
)

// Storage records key events so a session can be replayed later.
type Storage interface {
	Store(event *model.KeyEvent) error
	AllIterator() (iter.Seq[model.KeyEventWithTimestamp], error)
	Count() (int, error)
	Close()
}
