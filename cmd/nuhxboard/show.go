package nuhxboard

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dasdy/nuhxboard/web"
	"github.com/spf13/cobra"
)

var (
	port int
	dev  bool
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Serve the live board in the browser",
	Long: `Load the layout and style documents, listen to key events from the chosen source
and serve the board on the given port. The page updates itself over a websocket.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := loadBoard()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runWithInput(ctx, b, func(ctx context.Context) error {
			return web.StartServer(ctx, port, b, dev)
		})
	},
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Port on which server should be watching")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable developer mode")
}

func init() {
	rootCmd.AddCommand(showCmd)
	addInputFlags(showCmd)
	addServerFlags(showCmd)
}
