package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/effortlog/internal/domain"
)

// Names maps user ids to display names. Missing ids render truncated.
type Names map[string]string

func (n Names) label(id string) string {
	if id == "" {
		return Dim("--")
	}
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return TruncID(id)
}

// FormatEffortList renders effort records as a table with a total footer.
func FormatEffortList(title string, records []*domain.EffortRecord, names Names) string {
	headers := []string{"ID", "DATE", "ROLE", "STAKEHOLDER", "MODE", "HOURS", "AREA OF WORK"}
	rows := make([][]string, 0, len(records))

	var total domain.Hours
	for _, e := range records {
		total += e.Hours
		rows = append(rows, []string{
			TruncID(e.ID),
			e.EffortDate.Format("Mon 2006-01-02"),
			RoleBadge(e.Role),
			names.label(e.StakeholderID),
			ModeLabel(e.Mode),
			HoursStyled(e.Hours),
			Dim(Truncate(e.AreaOfWork, 40)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, 5))
	b.WriteString(fmt.Sprintf("\n%s  %s", StyleDim.Render("TOTAL"), Bold(total.String()+"h")))
	return RenderBox(title, b.String())
}

// FormatEffortDetail renders a single record as a labelled card.
func FormatEffortDetail(e *domain.EffortRecord, names Names) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-12s", label)), value))
	}

	field("ID", e.ID)
	field("COHORT", e.CohortID)
	field("DATE", HumanDate(e.EffortDate))
	field("MONTH", e.Month)
	field("ROLE", RoleBadge(e.Role))
	field("STAKEHOLDER", names.label(e.StakeholderID))
	field("MODE", ModeLabel(e.Mode))
	field("HOURS", HoursStyled(e.Hours))
	field("AREA", OrDash(e.AreaOfWork))
	field("UPDATED BY", names.label(e.UpdatedBy))
	field("UPDATED", HumanTimestamp(e.UpdatedAt))
	field("CREATED", HumanTimestamp(e.CreatedAt))

	return RenderBox("Effort", strings.TrimRight(b.String(), "\n"))
}

// FormatSummaryList renders a cohort's weekly summaries.
func FormatSummaryList(cohort *domain.Cohort, summaries []*domain.WeeklySummary) string {
	headers := []string{"WEEK", "START", "END", "TOTAL", "RECOMPUTED"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			WeekRange(s.WeekStart, s.WeekEnd),
			s.WeekStart.Format(domain.DateLayout),
			s.WeekEnd.Format(domain.DateLayout),
			HoursStyled(s.TotalHours),
			Dim(HumanTimestamp(s.SummaryDate)),
		})
	}
	content := StyleBold.Render(cohortTitle(cohort)) + "\n\n" + RenderTable(headers, rows, 3)
	return RenderBox("Weekly summaries", content)
}

// FormatSummary renders one weekly summary card.
func FormatSummary(cohort *domain.Cohort, s *domain.WeeklySummary) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(cohortTitle(cohort)) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("WEEK      "), WeekRange(s.WeekStart, s.WeekEnd)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TOTAL     "), HoursStyled(s.TotalHours)))
	b.WriteString(fmt.Sprintf("%s  %s", StyleDim.Render("RECOMPUTED"), HumanTimestamp(s.SummaryDate)))
	return RenderBox("Weekly summary", b.String())
}

// FormatCohortList renders cohorts with their assigned stakeholders.
func FormatCohortList(cohorts []*domain.Cohort, names Names) string {
	headers := []string{"CODE", "NAME", "TRAINER", "MENTOR", "BUDDY MENTOR"}
	rows := make([][]string, 0, len(cohorts))
	for _, c := range cohorts {
		row := []string{Bold(c.Code), c.Name}
		for _, role := range domain.Roles {
			id, _ := c.StakeholderFor(role)
			row = append(row, names.label(id))
		}
		rows = append(rows, row)
	}
	return RenderBox("Cohorts", RenderTable(headers, rows))
}

// FormatCohort renders a single cohort card.
func FormatCohort(c *domain.Cohort, names Names) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(c.Name) + "  " + Dim(c.Code) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID          "), c.ID))
	for _, role := range domain.Roles {
		id, _ := c.StakeholderFor(role)
		b.WriteString(fmt.Sprintf("%s  %s\n", RoleColor(role).Render(fmt.Sprintf("%-12s", string(role))), names.label(id)))
	}
	b.WriteString(fmt.Sprintf("%s  %s", StyleDim.Render("UPDATED     "), HumanTimestamp(c.UpdatedAt)))
	return RenderBox("Cohort", b.String())
}

// FormatUserList renders the user directory.
func FormatUserList(users []*domain.User) string {
	headers := []string{"ID", "NAME", "EMAIL"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{TruncID(u.ID), Bold(u.Name), OrDash(u.Email)})
	}
	return RenderBox("Users", RenderTable(headers, rows))
}

func cohortTitle(c *domain.Cohort) string {
	if c == nil {
		return "--"
	}
	if c.Name != "" && c.Name != c.Code {
		return c.Code + " " + c.Name
	}
	return c.Code
}
