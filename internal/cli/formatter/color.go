package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RoleColor returns the style used for a stakeholder role.
func RoleColor(role domain.Role) lipgloss.Style {
	switch role {
	case domain.RoleTrainer:
		return StyleBlue
	case domain.RoleMentor:
		return StylePurple
	case domain.RoleBuddyMentor:
		return StyleYellow
	default:
		return StyleDim
	}
}

// RoleBadge renders a role such as BUDDY_MENTOR as "● Buddy mentor".
func RoleBadge(role domain.Role) string {
	label := strings.ReplaceAll(strings.ToLower(string(role)), "_", " ")
	if label == "" {
		label = "unknown"
	}
	label = strings.ToUpper(label[:1]) + label[1:]
	return RoleColor(role).Render("● " + label)
}

// ModeLabel renders IN_PERSON and VIRTUAL in their display form.
func ModeLabel(mode domain.Mode) string {
	switch mode {
	case domain.ModeInPerson:
		return StyleFg.Render("In person")
	case domain.ModeVirtual:
		return StyleBlue.Render("Virtual")
	default:
		return Dim(string(mode))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
