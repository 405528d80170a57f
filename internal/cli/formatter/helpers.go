package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate renders a calendar date as "Mon Jun 16, 2025".
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Mon Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly timestamp relative to now.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom is HumanTimestamp against an explicit reference time.
func HumanTimestampFrom(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006 15:04")
	}
}

// WeekRange renders an inclusive week as "Jun 16 – Jun 22, 2025".
func WeekRange(start, end time.Time) string {
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

// HoursStyled renders hours with a trailing "h"; zero is dimmed.
func HoursStyled(h domain.Hours) string {
	text := h.String() + "h"
	if h == 0 {
		return Dim(text)
	}
	return StyleGreen.Render(text)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// OrDash returns a dimmed "--" for an empty value.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
