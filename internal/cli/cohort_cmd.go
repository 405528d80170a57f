package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/effortlog/internal/cli/formatter"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/spf13/cobra"
)

func newCohortCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cohort",
		Short: "Manage cohorts and their stakeholders",
	}

	cmd.AddCommand(
		newCohortAddCmd(app),
		newCohortListCmd(app),
		newCohortShowCmd(app),
		newCohortAssignCmd(app),
	)

	return cmd
}

func newCohortAddCmd(app *App) *cobra.Command {
	var code, name, trainer, mentor, buddy string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a cohort",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Cohort{Code: code, Name: name}
			c.Assign(domain.RoleTrainer, trainer, c.UpdatedAt)
			c.Assign(domain.RoleMentor, mentor, c.UpdatedAt)
			c.Assign(domain.RoleBuddyMentor, buddy, c.UpdatedAt)

			if err := app.Directory.CreateCohort(context.Background(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added cohort %s (%s)\n", c.Code, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Short cohort code, e.g. JAVA-01")
	cmd.Flags().StringVar(&name, "name", "", "Cohort name (defaults to the code)")
	cmd.Flags().StringVar(&trainer, "trainer", "", "Primary trainer user ID")
	cmd.Flags().StringVar(&mentor, "mentor", "", "Primary mentor user ID")
	cmd.Flags().StringVar(&buddy, "buddy-mentor", "", "Buddy mentor user ID")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newCohortListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cohorts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cohorts, err := app.Directory.ListCohorts(ctx)
			if err != nil {
				return err
			}
			if len(cohorts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cohorts found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCohortList(cohorts, userNames(ctx, app)))
			return nil
		},
	}
}

func newCohortShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE|ID",
		Short: "Show a cohort",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Directory.GetCohort(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCohort(c, userNames(ctx, app)))
			return nil
		},
	}
}

func newCohortAssignCmd(app *App) *cobra.Command {
	var role domain.Role
	var userID string

	cmd := &cobra.Command{
		Use:   "assign CODE|ID",
		Short: "Assign (or with an empty --user, clear) a cohort stakeholder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Directory.AssignStakeholder(context.Background(), args[0], role, userID)
			if err != nil {
				return err
			}
			if userID == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s on %s\n", role, c.Code)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s as %s on %s\n", userID, role, c.Code)
			return nil
		},
	}

	cmd.Flags().Var(roleValue{r: &role}, "role", "trainer, mentor or buddy-mentor")
	cmd.Flags().StringVar(&userID, "user", "", "User ID to assign")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}
