package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/importer"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		all        bool
		file       string
		parallel   int
		promptOnly bool
		inspect    bool
	)

	cmd := &cobra.Command{
		Use:   "generate [department...]",
		Short: "Generate timetables for one or more departments",
		Long: `Generate asks the configured model for each department's timetable,
extracts the CSV block from its reply and stores the attempt in history.

Departments come from stored names, --all, or a YAML/JSON --file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfgs, err := resolveTargets(ctx, app, args, all, file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if promptOnly {
				for _, c := range cfgs {
					fmt.Fprintln(out, formatter.FormatPrompt(c.Name, app.Generations.Preview(c)))
				}
				return nil
			}

			if app.LLMErr != nil {
				return fmt.Errorf("model not configured: %w", app.LLMErr)
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), spinnerMessage(cfgs))
			}
			gens, err := app.Generations.GenerateAll(ctx, cfgs, parallel)
			stop()

			// Departments that finished are shown even when another one
			// could not be saved.
			for _, g := range gens {
				if g != nil {
					fmt.Fprintln(out, formatter.FormatGeneration(g))
				}
			}
			if err != nil {
				return err
			}
			if len(gens) > 1 {
				fmt.Fprintln(out, formatter.FormatSummary(gens))
			}

			if inspect && app.interactive() {
				for _, g := range gens {
					if g.Result.OK() || g.Result.Raw == "" {
						continue
					}
					if err := app.inspect(g.DepartmentName+" raw response", g.Result.Raw); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Generate for every stored department")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Generate for departments in a YAML/JSON file without storing them")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Number of departments to generate concurrently")
	cmd.Flags().BoolVar(&promptOnly, "prompt-only", false, "Print the prompts instead of calling the model")
	cmd.Flags().BoolVar(&inspect, "inspect", false, "Open failed raw responses in a scrollable viewer")
	cmd.MarkFlagsMutuallyExclusive("all", "file")

	return cmd
}

// resolveTargets gathers departments from names, --all or --file.
func resolveTargets(ctx context.Context, app *App, names []string, all bool, file string) ([]domain.DepartmentConfig, error) {
	switch {
	case file != "":
		if len(names) > 0 {
			return nil, errors.New("department names cannot be combined with --file")
		}
		return loadFileTargets(file)
	case all:
		if len(names) > 0 {
			return nil, errors.New("department names cannot be combined with --all")
		}
		depts, err := app.Departments.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(depts) == 0 {
			return nil, errors.New("no departments stored; add one with 'timetabler department add'")
		}
		return derefAll(depts), nil
	case len(names) == 0:
		return nil, errors.New("name at least one department, or pass --all or --file")
	}

	out := make([]domain.DepartmentConfig, 0, len(names))
	for _, n := range names {
		d, err := app.Departments.Get(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// loadFileTargets reads departments that are not stored. Their IDs are
// cleared so history rows carry the name only.
func loadFileTargets(path string) ([]domain.DepartmentConfig, error) {
	f, err := importer.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if errs := importer.Validate(f); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, errors.Join(errs...))
	}
	depts, err := importer.Convert(f)
	if err != nil {
		return nil, err
	}
	out := derefAll(depts)
	for i := range out {
		out[i].ID = ""
	}
	return out, nil
}

func derefAll(depts []*domain.DepartmentConfig) []domain.DepartmentConfig {
	out := make([]domain.DepartmentConfig, 0, len(depts))
	for _, d := range depts {
		out = append(out, *d)
	}
	return out
}

func spinnerMessage(cfgs []domain.DepartmentConfig) string {
	if len(cfgs) == 1 {
		return fmt.Sprintf("Generating %s timetable...", cfgs[0].Name)
	}
	return fmt.Sprintf("Generating %d timetables...", len(cfgs))
}
