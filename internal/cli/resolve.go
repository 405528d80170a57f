package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/effortlog/internal/cli/formatter"
)

// resolveCohortID resolves a --cohort flag value, either a cohort code or an
// id, to the cohort id.
func resolveCohortID(ctx context.Context, app *App, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("--cohort is required")
	}
	c, err := app.Directory.GetCohort(ctx, ref)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// actingUser returns the user recorded as updated-by on writes.
func actingUser(app *App) (string, error) {
	if app.ActingUser == "" {
		return "", fmt.Errorf("no acting user: pass --as or set EFFORTLOG_ACTING_USER")
	}
	return app.ActingUser, nil
}

// userNames loads display names for rendering. A lookup failure only costs
// the names, so it is not reported.
func userNames(ctx context.Context, app *App) formatter.Names {
	names := formatter.Names{}
	users, err := app.Directory.ListUsers(ctx)
	if err != nil {
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}
