package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/effortlog/internal/cli/formatter"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/spf13/cobra"
)

func newEffortCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effort",
		Short: "Log and inspect individual effort records",
	}

	cmd.AddCommand(
		newEffortLogCmd(app),
		newEffortListCmd(app),
		newEffortShowCmd(app),
		newEffortRemoveCmd(app),
	)

	return cmd
}

func newEffortLogCmd(app *App) *cobra.Command {
	var cohortRef, stakeholder, notes string
	var role domain.Role
	mode := domain.ModeInPerson
	var hours domain.Hours
	var date time.Time

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log one stakeholder's hours for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			userID, err := actingUser(app)
			if err != nil {
				return err
			}
			cohortID, err := resolveCohortID(ctx, app, cohortRef)
			if err != nil {
				return err
			}
			if date.IsZero() {
				date = domain.DateOf(app.today())
			}

			saved, err := app.Efforts.SubmitEffort(ctx, &domain.EffortRecord{
				CohortID:      cohortID,
				StakeholderID: stakeholder,
				Role:          role,
				Mode:          mode,
				AreaOfWork:    notes,
				Hours:         hours,
				EffortDate:    date,
			}, domain.AuditContext{UserID: userID})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %sh %s on %s (%s)\n",
				saved.Hours, saved.Role, saved.EffortDate.Format(domain.DateLayout), saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&cohortRef, "cohort", "", "Cohort code or ID")
	cmd.Flags().StringVar(&stakeholder, "stakeholder", "", "Stakeholder user ID")
	cmd.Flags().Var(roleValue{r: &role}, "role", "trainer, mentor or buddy-mentor")
	cmd.Flags().Var(modeValue{m: &mode}, "mode", "in-person or virtual")
	cmd.Flags().Var(hoursValue{h: &hours}, "hours", "Hours worked, e.g. 3.5")
	cmd.Flags().Var(newDateValue(&date), "date", "Effort date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "Area of work")
	_ = cmd.MarkFlagRequired("cohort")
	_ = cmd.MarkFlagRequired("stakeholder")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newEffortListCmd(app *App) *cobra.Command {
	var cohortRef, stakeholder string
	var from, to time.Time

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List effort records for a cohort or a stakeholder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var records []*domain.EffortRecord
			var title string
			switch {
			case stakeholder != "":
				var err error
				records, err = app.Efforts.ListByStakeholder(ctx, stakeholder)
				if err != nil {
					return err
				}
				title = "Efforts by stakeholder"
			case cohortRef != "":
				cohortID, err := resolveCohortID(ctx, app, cohortRef)
				if err != nil {
					return err
				}
				if from.IsZero() && to.IsZero() {
					records, err = app.Efforts.ListByCohort(ctx, cohortID)
				} else {
					if from.IsZero() || to.IsZero() {
						return fmt.Errorf("--from and --to must be given together")
					}
					records, err = app.Efforts.ListByCohortAndRange(ctx, cohortID, from, to)
				}
				if err != nil {
					return err
				}
				title = "Efforts"
			default:
				return fmt.Errorf("pass --cohort or --stakeholder")
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No effort records found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEffortList(title, records, userNames(ctx, app)))
			return nil
		},
	}

	cmd.Flags().StringVar(&cohortRef, "cohort", "", "Cohort code or ID")
	cmd.Flags().StringVar(&stakeholder, "stakeholder", "", "Stakeholder user ID")
	cmd.Flags().Var(newDateValue(&from), "from", "First date, inclusive")
	cmd.Flags().Var(newDateValue(&to), "to", "Last date, inclusive")

	return cmd
}

func newEffortShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one effort record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := app.Efforts.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEffortDetail(e, userNames(ctx, app)))
			return nil
		},
	}
}

func newEffortRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an effort record and recompute its week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Efforts.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed effort %s\n", args[0])
			return nil
		},
	}
}
