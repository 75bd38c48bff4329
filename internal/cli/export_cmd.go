package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <generation-id>",
		Short: "Write a generated timetable as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.Generations.GetGeneration(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !g.Result.OK() {
				return fmt.Errorf("generation %s failed and has no timetable: %w", g.DisplayID(), g.Result.Err)
			}

			if outPath == "" {
				return formatter.WriteCSV(cmd.OutOrStdout(), g.Result.Rows)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := formatter.WriteCSV(f, g.Result.Rows); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(g.Result.Rows), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}
