package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/effortlog/internal/cli/formatter"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage trainers, mentors and administrators",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{Name: name, Email: email}
			if err := app.Directory.CreateUser(context.Background(), u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %s (%s)\n", u.Name, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Directory.ListUsers(context.Background())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}
}
