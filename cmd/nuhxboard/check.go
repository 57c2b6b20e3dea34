package nuhxboard

import (
	"fmt"
	"io"

	"github.com/dasdy/nuhxboard/frame"
	"github.com/dasdy/nuhxboard/model"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the layout and style documents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := loadBoard()
		if err != nil {
			return err
		}

		return printSummary(cmd.OutOrStdout(), b.Config, b.Style, b.Skipped)
	},
}

func printSummary(w io.Writer, cfg *model.Config, doc *model.Style, skipped []frame.SkippedElement) error {
	kinds := make(map[model.ElementKind]int)
	for _, e := range cfg.Elements {
		kinds[e.Kind]++
	}

	lines := []string{
		fmt.Sprintf("layout: %s (%gx%g)", configPath, cfg.Width, cfg.Height),
		fmt.Sprintf("style: %s", stylePath),
	}

	for _, kind := range []model.ElementKind{
		model.KindKeyboardKey, model.KindMouseKey, model.KindMouseScroll, model.KindMouseSpeedIndicator,
	} {
		if kinds[kind] > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", kind, kinds[kind]))
		}
	}

	lines = append(lines,
		fmt.Sprintf("style overrides: %d", len(doc.ElementStyles)),
		fmt.Sprintf("elements not drawn: %d", len(skipped)))

	for _, s := range skipped {
		lines = append(lines, fmt.Sprintf("  %s %d: %v", s.Kind, s.ID, s.Reason))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("could not write summary: %w", err)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
