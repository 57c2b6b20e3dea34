package nuhxboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/dasdy/nuhxboard/board"
	"github.com/dasdy/nuhxboard/db"
	"github.com/dasdy/nuhxboard/keylog"
	"github.com/dasdy/nuhxboard/keylog/parser"
	"github.com/dasdy/nuhxboard/keylog/ports"
	"github.com/dasdy/nuhxboard/layout"
	"github.com/dasdy/nuhxboard/style"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const autoDevice = "auto"

var (
	source     string
	devices    []string
	recordPath string
	verbose    bool
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&source, "source", "xinput", "Where key events come from: xinput, stdin or serial")
	cmd.Flags().StringSliceVarP(&devices, "device", "d", []string{autoDevice},
		"Serial devices to read when source is serial; \"auto\" watches for ZMK keyboards")
	cmd.Flags().StringVarP(&recordPath, "record", "o", "", "Record every key event to this sqlite file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every key event")
}

func loadBoard() (*board.Board, error) {
	cfg, doc, err := layout.LoadFiles(configPath, stylePath)
	if err != nil {
		return nil, err
	}

	var opts []style.Option
	if fontSizeFollowsState {
		opts = append(opts, style.WithStateFontSize())
	}

	b := board.New(cfg, doc, opts...)

	slog.InfoContext(logCtx, "Loaded board",
		"elements", len(cfg.Elements), "overrides", len(doc.ElementStyles), "width", cfg.Width, "height", cfg.Height)

	return b, nil
}

// openSerial reads from the given devices or, for "auto", from every ZMK keyboard that shows up.
func openSerial(ctx context.Context) (<-chan string, func(), error) {
	if len(devices) == 0 || slices.Equal(devices, []string{autoDevice}) {
		return ports.DefaultMonitoringDeviceReader().Channel(ctx), func() {}, nil
	}

	ch, closer, err := ports.OpenFiles(devices...)
	if err == nil {
		return ch, closer, nil
	}

	// Try suggesting devices
	names, errInner := ports.GetAvailableDevices()
	if errInner != nil {
		return nil, nil, fmt.Errorf("could not open devices: %w; could not suggest devices: %w", err, errInner)
	}

	if len(names) > 0 {
		return nil, nil, fmt.Errorf("could not open devices: %w. Maybe try instead: %+v", err, names)
	}

	return nil, nil, fmt.Errorf("could not open devices: %w. It does not seem like any keyboard is connected", err)
}

// openInput is swapped out in tests to feed canned lines.
var openInput = openLineSource

func openLineSource(ctx context.Context) (<-chan string, parser.LineParser, func(), error) {
	p, err := parser.ForSource(source)
	if err != nil {
		return nil, nil, nil, err
	}

	switch source {
	case "stdin":
		return ports.ReadFile(os.Stdin), p, func() {}, nil
	case "serial":
		ch, closer, err := openSerial(ctx)
		if err != nil {
			return nil, nil, nil, err
		}

		return ch, p, closer, nil
	default:
		ch, err := ports.StartXInput(ctx)
		if err != nil {
			return nil, nil, nil, err
		}

		return ch, p, func() {}, nil
	}
}

func openRecorder() (db.Storage, error) {
	if recordPath == "" {
		return nil, nil
	}

	storage, err := db.NewStorageFromPath(recordPath)
	if err != nil {
		return nil, fmt.Errorf("could not open %s as sqlite file: %w", recordPath, err)
	}

	slog.InfoContext(logCtx, "Recording key events", "path", recordPath)

	return storage, nil
}

// runWithInput feeds the configured input source into b while display runs.
// Both stop when the other fails or when ctx is done.
func runWithInput(ctx context.Context, b *board.Board, display func(context.Context) error) error {
	storage, err := openRecorder()
	if err != nil {
		return err
	}

	if storage != nil {
		defer storage.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	lines, p, closer, err := openInput(gctx)
	if err != nil {
		return err
	}
	defer closer()

	g.Go(func() error {
		return keylog.KeyLogLoop(gctx, lines, p, b, storage, verbose)
	})

	g.Go(func() error {
		// The input has no reason to outlive the display.
		defer cancel()

		return display(gctx)
	})

	return ignoreCanceled(g.Wait())
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
