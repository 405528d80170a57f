package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/effortlog/internal/cli/formatter"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Submit a cohort's effort for a whole week",
	}

	cmd.AddCommand(newWeekSubmitCmd(app))

	return cmd
}

func newWeekSubmitCmd(app *App) *cobra.Command {
	var cohortRef, file, location string
	var weekStart, weekEnd time.Time
	var interactive bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Replace a week's effort records with a new submission",
		Long: `Replace every effort record of the cohort between the week's start and end
dates with the submitted day logs, then recompute the weekly summary.

The submission comes from --file (YAML or JSON, "-" for stdin) or, on a
terminal, from an --interactive form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			userID, err := actingUser(app)
			if err != nil {
				return err
			}

			var sub domain.WeeklySubmission
			switch {
			case file != "" && interactive:
				return fmt.Errorf("use either --file or --interactive, not both")
			case file != "":
				var fileCohort string
				sub, fileCohort, err = readSubmission(cmd, file)
				if err != nil {
					return err
				}
				if cohortRef == "" {
					cohortRef = fileCohort
				}
				if !weekStart.IsZero() {
					sub.WeekStart = weekStart
				}
				if !weekEnd.IsZero() {
					sub.WeekEnd = weekEnd
				}
			case interactive:
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal; use --file instead")
				}
				sub, err = promptSubmission(cmd, weekStart, weekEnd, app.today())
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("pass --file or --interactive")
			}
			if location != "" {
				sub.Location = location
			}
			if sub.WeekEnd.IsZero() {
				sub.WeekEnd = sub.WeekStart.AddDate(0, 0, 6)
			}

			sub.CohortID, err = resolveCohortID(ctx, app, cohortRef)
			if err != nil {
				return err
			}

			summary, err := app.Efforts.SubmitWeek(ctx, sub, domain.AuditContext{UserID: userID})
			if err != nil {
				return err
			}

			c, err := app.Directory.GetCohort(ctx, sub.CohortID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(c, summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&cohortRef, "cohort", "", "Cohort code or ID (overrides the file)")
	cmd.Flags().StringVar(&file, "file", "", "Submission file (YAML or JSON), - for stdin")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Fill the week in a terminal form")
	cmd.Flags().Var(newDateValue(&weekStart), "week-start", "First day of the week (default: Monday of this week)")
	cmd.Flags().Var(newDateValue(&weekEnd), "week-end", "Last day of the week (default: six days after start)")
	cmd.Flags().StringVar(&location, "location", "", "Where the sessions took place")

	return cmd
}

func readSubmission(cmd *cobra.Command, path string) (domain.WeeklySubmission, string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return domain.WeeklySubmission{}, "", fmt.Errorf("opening submission: %w", err)
		}
		defer f.Close()
		r = f
	}
	return decodeSubmission(r)
}

// maxFormDays bounds the interactive form to one week of day groups.
const maxFormDays = 7

// formDays returns how many day groups the interactive form needs for the
// inclusive range start..end.
func formDays(start, end time.Time) (int, error) {
	days := int(domain.DateOf(end).Sub(domain.DateOf(start)).Hours()/24) + 1
	switch {
	case days < 1:
		return 0, fmt.Errorf("--week-end is before --week-start")
	case days > maxFormDays:
		return 0, fmt.Errorf("the interactive form covers at most %d days, got %d; use --file for longer ranges", maxFormDays, days)
	}
	return days, nil
}

func promptSubmission(cmd *cobra.Command, weekStart, weekEnd, today time.Time) (domain.WeeklySubmission, error) {
	if weekStart.IsZero() {
		weekStart, _ = domain.WeekOf(today)
	}
	if weekEnd.IsZero() {
		weekEnd = weekStart.AddDate(0, 0, 6)
	}
	days, err := formDays(weekStart, weekEnd)
	if err != nil {
		return domain.WeeklySubmission{}, err
	}

	values := newWeekFormValues(weekStart, days)
	if err := runWeekForm(values, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return domain.WeeklySubmission{}, err
	}
	return values.toSubmission("", weekStart, weekEnd)
}
