package nuhxboard

import (
	"fmt"

	"github.com/dasdy/nuhxboard/layout"
	"github.com/spf13/cobra"
)

var schemaDir string

// schemaCmd represents the schema command.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write JSON schemas for the layout and style documents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := layout.WriteSchemas(schemaDir); err != nil {
			return err
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "schemas written to %s\n", schemaDir)

		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVar(&schemaDir, "out", "schemas", "Directory to write layout.json and style.json into")
}
