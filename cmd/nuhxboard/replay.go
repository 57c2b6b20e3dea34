package nuhxboard

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/dasdy/nuhxboard/db"
	"github.com/dasdy/nuhxboard/keylog"
	"github.com/dasdy/nuhxboard/web"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	replayPath  string
	replaySpeed float64
)

// replayCmd represents the replay command.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Play a recorded session back onto the browser board",
	Long: `Read key events recorded with --record and feed them to the board with their
original timing divided by --speed. The server keeps running after the session ends.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := loadBoard()
		if err != nil {
			return err
		}

		storage, err := db.NewStorageFromPath(replayPath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", replayPath, err)
		}
		defer storage.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return web.StartServer(gctx, port, b, dev)
		})

		g.Go(func() error {
			if err := keylog.Replay(gctx, storage, b, replaySpeed); err != nil {
				return err
			}

			slog.InfoContext(logCtx, "Replay finished", "path", replayPath)

			return nil
		})

		return ignoreCanceled(g.Wait())
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	addServerFlags(replayCmd)

	replayCmd.Flags().StringVarP(&replayPath, "storage", "i", "./keypresses.sqlite", "Recorded session to play back")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1, "Playback speed multiplier, 0 plays without delays")
}

