package main

import (
	"log/slog"
	"os"

	"github.com/dasdy/nuhxboard/cmd/nuhxboard"
	"github.com/dasdy/nuhxboard/logging"
)

func main() {
	// Replaced once flags are parsed and --log-level is known.
	slog.SetDefault(logging.NewLogger(os.Stderr, slog.LevelInfo))

	nuhxboard.Execute()
}
