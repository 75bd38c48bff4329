package cli

import (
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Departments service.DepartmentService
	Generations service.GenerationService
	Import      service.ImportService

	// LLMErr is set when no model client could be built from the
	// environment. Only commands that call the model report it.
	LLMErr error

	// IsInteractive reports whether the session is attached to a terminal.
	// Nil means non-interactive.
	IsInteractive func() bool

	// RunForm and Inspect default to the real terminal UIs; tests replace them.
	RunForm func(*huh.Form) error
	Inspect func(title, raw string) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) inspect(title, raw string) error {
	if a.Inspect != nil {
		return a.Inspect(title, raw)
	}
	return runInspector(title, raw)
}

// NewRootCmd creates the top-level "timetabler" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timetabler",
		Short:         "Generate department timetables with a language model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newDepartmentCmd(app),
		newGenerateCmd(app),
		newHistoryCmd(app),
		newExportCmd(app),
	)

	return root
}
