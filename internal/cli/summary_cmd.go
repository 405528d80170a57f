package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/effortlog/internal/cli/formatter"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Inspect and recompute weekly effort summaries",
	}

	cmd.AddCommand(
		newSummaryRecomputeCmd(app),
		newSummaryListCmd(app),
		newSummaryShowCmd(app),
	)

	return cmd
}

func newSummaryRecomputeCmd(app *App) *cobra.Command {
	var cohortRef string
	var date time.Time

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute the weekly total for the week containing --date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Directory.GetCohort(ctx, cohortRef)
			if err != nil {
				return err
			}
			if date.IsZero() {
				date = domain.DateOf(app.today())
			}
			s, err := app.Efforts.RecomputeWeek(ctx, c.ID, date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(c, s))
			return nil
		},
	}

	cmd.Flags().StringVar(&cohortRef, "cohort", "", "Cohort code or ID")
	cmd.Flags().Var(newDateValue(&date), "date", "Any date in the week (default today)")
	_ = cmd.MarkFlagRequired("cohort")

	return cmd
}

func newSummaryListCmd(app *App) *cobra.Command {
	var cohortRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a cohort's weekly summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Directory.GetCohort(ctx, cohortRef)
			if err != nil {
				return err
			}
			summaries, err := app.Efforts.ListSummaries(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weekly summaries yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummaryList(c, summaries))
			return nil
		},
	}

	cmd.Flags().StringVar(&cohortRef, "cohort", "", "Cohort code or ID")
	_ = cmd.MarkFlagRequired("cohort")

	return cmd
}

func newSummaryShowCmd(app *App) *cobra.Command {
	var cohortRef string
	var week time.Time

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored summary for one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Directory.GetCohort(ctx, cohortRef)
			if err != nil {
				return err
			}
			if week.IsZero() {
				week = app.today()
			}
			weekStart, _ := domain.WeekOf(week)
			s, err := app.Efforts.GetSummary(ctx, c.ID, weekStart)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(c, s))
			return nil
		},
	}

	cmd.Flags().StringVar(&cohortRef, "cohort", "", "Cohort code or ID")
	cmd.Flags().Var(newDateValue(&week), "week", "Any date in the week (default this week)")
	_ = cmd.MarkFlagRequired("cohort")

	return cmd
}
