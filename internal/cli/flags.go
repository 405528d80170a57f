package cli

import (
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value holding a YYYY-MM-DD calendar date.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = dateValue{}

func newDateValue(p *time.Time) dateValue {
	return dateValue{t: p}
}

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	*d.t = t
	return nil
}

func (dateValue) Type() string { return "date" }

// roleValue is a pflag.Value accepting trainer, mentor or buddy-mentor.
type roleValue struct {
	r *domain.Role
}

var _ pflag.Value = roleValue{}

func (v roleValue) String() string {
	if v.r == nil {
		return ""
	}
	return string(*v.r)
}

func (v roleValue) Set(s string) error {
	r, err := domain.ParseRole(s)
	if err != nil {
		return err
	}
	*v.r = r
	return nil
}

func (roleValue) Type() string { return "role" }

// modeValue is a pflag.Value accepting in-person or virtual.
type modeValue struct {
	m *domain.Mode
}

var _ pflag.Value = modeValue{}

func (v modeValue) String() string {
	if v.m == nil {
		return ""
	}
	return string(*v.m)
}

func (v modeValue) Set(s string) error {
	m, err := domain.ParseMode(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (modeValue) Type() string { return "mode" }

// hoursValue is a pflag.Value holding decimal hours such as 3.5.
type hoursValue struct {
	h *domain.Hours
}

var _ pflag.Value = hoursValue{}

func (v hoursValue) String() string {
	if v.h == nil {
		return "0.00"
	}
	return v.h.String()
}

func (v hoursValue) Set(s string) error {
	h, err := domain.ParseHours(s)
	if err != nil {
		return err
	}
	*v.h = h
	return nil
}

func (hoursValue) Type() string { return "hours" }
