package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/effortlog/internal/cli/formatter"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// errWeekFormCancelled is returned when the week form is left with esc or ctrl+c.
var errWeekFormCancelled = errors.New("week submission cancelled")

// effortlogHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func effortlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// dayFormValues collects one day of the interactive week form as raw text.
type dayFormValues struct {
	Date        time.Time
	Holiday     bool
	Trainer     string
	Mentor      string
	BuddyMentor string
	Notes       string
}

// weekFormValues backs the interactive week form; one entry per day.
type weekFormValues struct {
	Location string
	Days     []dayFormValues
}

func newWeekFormValues(weekStart time.Time, days int) *weekFormValues {
	v := &weekFormValues{Days: make([]dayFormValues, days)}
	for i := range v.Days {
		v.Days[i].Date = weekStart.AddDate(0, 0, i)
	}
	return v
}

// validateOptionalHours accepts empty or a non-negative decimal.
func validateOptionalHours(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	h, err := domain.ParseHours(s)
	if err != nil || h < 0 {
		return fmt.Errorf("enter hours such as 4 or 2.5")
	}
	return nil
}

// hoursInput returns a huh.Input for an optional hours field.
func hoursInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("0").
		Value(value).
		Validate(validateOptionalHours)
}

// weekSubmissionForm builds one form group per day plus a location group.
func weekSubmissionForm(values *weekFormValues) *huh.Form {
	groups := make([]*huh.Group, 0, len(values.Days)+1)
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Location").
			Placeholder("optional").
			Value(&values.Location),
	))

	for i := range values.Days {
		d := &values.Days[i]
		groups = append(groups, huh.NewGroup(
			huh.NewNote().Title(d.Date.Format("Monday, Jan 2")),
			huh.NewConfirm().Title("Holiday?").Value(&d.Holiday),
			hoursInput("Trainer hours", &d.Trainer),
			hoursInput("Mentor hours", &d.Mentor),
			hoursInput("Buddy mentor hours", &d.BuddyMentor),
			huh.NewInput().Title("Notes").Placeholder(domain.DefaultAreaOfWork).Value(&d.Notes),
		))
	}

	return huh.NewForm(groups...).WithTheme(effortlogHuhTheme()).WithShowHelp(false)
}

// weekFormModel wraps the week form as a tea.Model. Escape cancels.
type weekFormModel struct {
	form      *huh.Form
	cancelled bool
}

func newWeekFormModel(form *huh.Form) *weekFormModel {
	return &weekFormModel{form: form}
}

func (m *weekFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *weekFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.cancelled = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, tea.Quit
	case huh.StateAborted:
		m.cancelled = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m *weekFormModel) View() string {
	if m.form.State != huh.StateNormal {
		return ""
	}
	return m.form.View() + "\n" + m.helpLine()
}

func (m *weekFormModel) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (m *weekFormModel) helpLine() string {
	parts := make([]string, 0, 3)
	for _, b := range m.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

// runWeekForm runs the form on the given streams until it completes or is
// cancelled.
func runWeekForm(values *weekFormValues, in io.Reader, out io.Writer) error {
	m := newWeekFormModel(weekSubmissionForm(values))
	if _, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run(); err != nil {
		return fmt.Errorf("running week form: %w", err)
	}
	if m.cancelled {
		return errWeekFormCancelled
	}
	return nil
}

// toSubmission converts the collected text into submission values. Blank
// hours become nil entries, which produce no record.
func (v *weekFormValues) toSubmission(cohortID string, weekStart, weekEnd time.Time) (domain.WeeklySubmission, error) {
	sub := domain.WeeklySubmission{
		CohortID:  cohortID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Location:  strings.TrimSpace(v.Location),
	}
	for _, d := range v.Days {
		log := domain.DayLog{Date: d.Date, Holiday: d.Holiday}
		var err error
		if log.Trainer, err = formDetail(d.Trainer, d.Notes); err != nil {
			return sub, err
		}
		if log.Mentor, err = formDetail(d.Mentor, d.Notes); err != nil {
			return sub, err
		}
		if log.BuddyMentor, err = formDetail(d.BuddyMentor, d.Notes); err != nil {
			return sub, err
		}
		sub.DayLogs = append(sub.DayLogs, log)
	}
	return sub, nil
}

func formDetail(hours, notes string) (*domain.EffortDetail, error) {
	if strings.TrimSpace(hours) == "" {
		return nil, nil
	}
	h, err := domain.ParseHours(hours)
	if err != nil {
		return nil, err
	}
	return &domain.EffortDetail{Hours: &h, Notes: strings.TrimSpace(notes)}, nil
}
