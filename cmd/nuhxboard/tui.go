package nuhxboard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dasdy/nuhxboard/logging"
	"github.com/dasdy/nuhxboard/tui"
	"github.com/spf13/cobra"
)

var tuiLogFile string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Draw the live board in the terminal",
	Long: `Same input pipeline as show, drawn in the terminal instead of a browser.
Logs go to a file while the board occupies the screen.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := loadBoard()
		if err != nil {
			return err
		}

		logFile, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file %s: %w", tuiLogFile, err)
		}
		defer logFile.Close()

		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		previous := slog.Default()
		slog.SetDefault(logging.NewLogger(logFile, level))

		defer slog.SetDefault(previous)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
		defer stop()

		return runWithInput(ctx, b, func(ctx context.Context) error {
			return tui.Run(ctx, b, "nuhxboard "+configPath)
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	addInputFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "nuhxboard.log", "Where logs are written while the terminal view runs")
}
