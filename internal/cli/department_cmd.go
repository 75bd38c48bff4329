package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/spf13/cobra"
)

func newDepartmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "department",
		Aliases: []string{"dept"},
		Short:   "Manage department scheduling constraints",
	}

	cmd.AddCommand(
		newDepartmentAddCmd(app),
		newDepartmentListCmd(app),
		newDepartmentShowCmd(app),
		newDepartmentRemoveCmd(app),
		newDepartmentImportCmd(app),
	)

	return cmd
}

func newDepartmentAddCmd(app *App) *cobra.Command {
	var (
		name         string
		start, end   domain.TimeOfDay
		breakStart   domain.TimeOfDay
		lecture      int
		breakMinutes int
		faculty      []string
	)
	startFlag := newTimeOfDayValue(&start)
	endFlag := newTimeOfDayValue(&end)
	breakFlag := newTimeOfDayValue(&breakStart)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a department (interactive form when run without flags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var d *domain.DepartmentConfig
			var err error

			if cmd.Flags().NFlag() == 0 && app.interactive() {
				d, err = collectDepartment(app)
				if err != nil {
					return err
				}
			} else {
				if name == "" || !startFlag.set || !endFlag.set || lecture == 0 {
					return fmt.Errorf("--name, --start, --end and --lecture are required")
				}
				if breakFlag.set != (breakMinutes > 0) {
					return fmt.Errorf("--break-start and --break-minutes must be given together")
				}
				pairs, err := parseFacultyFlags(faculty)
				if err != nil {
					return err
				}
				d = &domain.DepartmentConfig{
					Name:               name,
					WorkStart:          start,
					WorkEnd:            end,
					LectureDurationMin: lecture,
					Faculty:            pairs,
				}
				if breakFlag.set {
					d.Break = &domain.BreakWindow{Start: breakStart, DurationMin: breakMinutes}
				}
			}

			if err := app.Departments.Create(context.Background(), d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created department %s (%d faculty)\n", d.Name, len(d.Faculty))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Department name")
	cmd.Flags().Var(startFlag, "start", "Working hours start (HH:MM)")
	cmd.Flags().Var(endFlag, "end", "Working hours end (HH:MM)")
	cmd.Flags().IntVar(&lecture, "lecture", 0, "Lecture duration in minutes")
	cmd.Flags().Var(breakFlag, "break-start", "Break start (HH:MM); omit for no break")
	cmd.Flags().IntVar(&breakMinutes, "break-minutes", 0, "Break duration in minutes")
	cmd.Flags().StringArrayVar(&faculty, "faculty", nil, `Faculty and subject as "Name=Subject" (repeatable)`)

	return cmd
}

// collectDepartment runs the two-step department form.
func collectDepartment(app *App) (*domain.DepartmentConfig, error) {
	draft := &departmentDraft{}
	if err := app.runForm(departmentForm(draft)); err != nil {
		return nil, err
	}
	if err := app.runForm(facultyForm(draft)); err != nil {
		return nil, err
	}
	return draft.toConfig()
}

func newDepartmentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			depts, err := app.Departments.List(context.Background())
			if err != nil {
				return err
			}
			if len(depts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No departments found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDepartmentList(depts))
			return nil
		},
	}
}

func newDepartmentShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show a department's constraints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Departments.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDepartment(d))
			return nil
		},
	}
}

func newDepartmentRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name|id>",
		Short: "Remove a department (its generation history is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Departments.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to remove %q without --yes", d.Name)
				}
				confirmed := false
				if err := app.runForm(wizardConfirm(fmt.Sprintf("Remove department %s?", d.Name), &confirmed)); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Departments.Delete(ctx, d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed department %s\n", d.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newDepartmentImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import departments from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d departments\n", len(result.Departments))
			for _, d := range result.Departments {
				fmt.Fprintf(out, "  %s %s\n", formatter.StyleGreen.Render("+"), d.Name)
			}
			return nil
		},
	}
}
