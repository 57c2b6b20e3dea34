package keylog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dasdy/nuhxboard/db"
	"github.com/dasdy/nuhxboard/keylog/parser"
	"github.com/dasdy/nuhxboard/logging"
	"github.com/dasdy/nuhxboard/model"
	"github.com/schollz/progressbar/v3"
)

var logCtx = logging.PackageCtx("keylog")

// EventSink receives decoded key events, usually a board.Board.
type EventSink interface {
	HandleEvent(event model.KeyEvent) bool
}

// KeyLogLoop decodes lines from ch and forwards the events to sink until ch closes or ctx is done.
// When storage is not nil every event is recorded too.
func KeyLogLoop(ctx context.Context, ch <-chan string, p parser.LineParser, sink EventSink, storage db.Storage, verbose bool) error {
	for {
		select {
		case line, ok := <-ch:
			if !ok {
				slog.InfoContext(logCtx, "Input closed, bailing out")

				return nil
			}

			parsed, err := p.ParseLine(line)
			if err != nil {
				slog.WarnContext(logCtx, "Could not parse line", "error", err, "line", line)

				continue
			}

			if parsed == nil {
				continue
			}

			changed := sink.HandleEvent(*parsed)

			if verbose {
				slog.InfoContext(logCtx, "Key event", "code", parsed.Code, "pressed", parsed.Pressed, "changed", changed)
			}

			if storage != nil {
				if err := storage.Store(parsed); err != nil {
					slog.ErrorContext(logCtx, "Could not record event", "error", err)
				}
			}
		case <-ctx.Done():
			return fmt.Errorf("key log loop stopped: %w", ctx.Err())
		}
	}
}

// Replay feeds recorded events into sink keeping their original spacing divided by speed.
// A speed of zero or less replays without delays.
func Replay(ctx context.Context, storage db.Storage, sink EventSink, speed float64) error {
	count, err := storage.Count()
	if err != nil {
		return err
	}

	items, err := storage.AllIterator()
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(count), "Replaying session...")

	var previous time.Time

	for item := range items {
		if speed > 0 && !previous.IsZero() {
			delay := time.Duration(float64(item.Timestamp.Sub(previous)) / speed)
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}

		previous = item.Timestamp

		sink.HandleEvent(item.KeyEvent)

		if err := bar.Add(1); err != nil {
			slog.ErrorContext(logCtx, "could not update progress bar", "error", err)
		}
	}

	if err := bar.Finish(); err != nil {
		slog.ErrorContext(logCtx, "could not finish progress bar", "error", err)
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("replay stopped: %w", ctx.Err())
	}
}
