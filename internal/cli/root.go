package cli

import (
	"time"

	"github.com/alexanderramin/effortlog/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Efforts   service.EffortService
	Directory service.DirectoryService

	// ActingUser is the default --as value, usually from configuration.
	ActingUser string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Now supplies today's date for flag defaults. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "effortlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "effortlog",
		Short:         "Cohort training-effort tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.ActingUser, "as", app.ActingUser, "User ID recorded as updated-by on writes")

	root.AddCommand(
		newUserCmd(app),
		newCohortCmd(app),
		newEffortCmd(app),
		newWeekCmd(app),
		newSummaryCmd(app),
	)

	return root
}
