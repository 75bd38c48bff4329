package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [department]",
		Short: "List past generation attempts, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			departmentID := ""
			if len(args) == 1 {
				d, err := app.Departments.Get(ctx, args[0])
				if err != nil {
					return err
				}
				departmentID = d.ID
			}

			gens, err := app.Generations.History(ctx, departmentID, limit)
			if err != nil {
				return err
			}
			if len(gens) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No generations yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(gens))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	cmd.AddCommand(newHistoryShowCmd(app))
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var showPrompt, showRaw bool

	cmd := &cobra.Command{
		Use:   "show <generation-id>",
		Short: "Show one generation attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.Generations.GetGeneration(context.Background(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatGeneration(g))
			fmt.Fprintln(out, formatter.Dim("generated "+formatter.HumanTimestamp(g.CreatedAt)))

			if showPrompt {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.FormatPrompt(g.DepartmentName, g.Prompt))
			}
			// Failed results already print the raw text.
			if showRaw && g.Result.OK() {
				fmt.Fprintln(out)
				if g.RawResponse == "" {
					fmt.Fprintln(out, formatter.Dim("(no response text)"))
				} else {
					fmt.Fprintln(out, formatter.RenderBox("Raw response", g.RawResponse))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Include the prompt that was sent")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Include the raw model response")
	return cmd
}
