package cli

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
	"gopkg.in/yaml.v3"
)

// submissionFile is the on-disk shape of a weekly submission. JSON input is
// accepted too, since JSON is valid YAML.
//
//	cohort: JAVA-01
//	week_start: 2025-06-16
//	location: Chennai
//	days:
//	  - date: 2025-06-16
//	    trainer: {hours: 4, notes: Collections}
//	  - date: 2025-06-17
//	    holiday: true
type submissionFile struct {
	Cohort    string    `yaml:"cohort"`
	WeekStart yamlDate  `yaml:"week_start"`
	WeekEnd   yamlDate  `yaml:"week_end"`
	Location  string    `yaml:"location"`
	Days      []dayFile `yaml:"days"`
}

type dayFile struct {
	Date        yamlDate    `yaml:"date"`
	Holiday     bool        `yaml:"holiday"`
	Trainer     *detailFile `yaml:"trainer"`
	Mentor      *detailFile `yaml:"mentor"`
	BuddyMentor *detailFile `yaml:"buddy_mentor"`
}

type detailFile struct {
	Hours *yamlHours `yaml:"hours"`
	Notes string     `yaml:"notes"`
}

// yamlDate decodes a YYYY-MM-DD scalar, quoted or not.
type yamlDate time.Time

func (d *yamlDate) UnmarshalYAML(value *yaml.Node) error {
	t, err := domain.ParseDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: date %q: use YYYY-MM-DD", value.Line, value.Value)
	}
	*d = yamlDate(t)
	return nil
}

// yamlHours decodes a numeric scalar into fixed-point hours.
type yamlHours domain.Hours

func (h *yamlHours) UnmarshalYAML(value *yaml.Node) error {
	v, err := domain.ParseHours(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*h = yamlHours(v)
	return nil
}

// decodeSubmission parses r into a submission. The cohort reference is
// returned separately because it may be a code that still needs resolving.
// A missing week_end stays zero so command flags can still move the week.
func decodeSubmission(r io.Reader) (domain.WeeklySubmission, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.WeeklySubmission{}, "", fmt.Errorf("reading submission: %w", err)
	}

	var f submissionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return domain.WeeklySubmission{}, "", fmt.Errorf("submission is empty")
		}
		return domain.WeeklySubmission{}, "", fmt.Errorf("decoding submission: %w", err)
	}

	sub := domain.WeeklySubmission{
		WeekStart: time.Time(f.WeekStart),
		WeekEnd:   time.Time(f.WeekEnd),
		Location:  f.Location,
	}
	if sub.WeekStart.IsZero() {
		return domain.WeeklySubmission{}, "", fmt.Errorf("submission: week_start is required")
	}

	for i, d := range f.Days {
		if time.Time(d.Date).IsZero() {
			return domain.WeeklySubmission{}, "", fmt.Errorf("submission: day %d has no date", i+1)
		}
		sub.DayLogs = append(sub.DayLogs, domain.DayLog{
			Date:        time.Time(d.Date),
			Holiday:     d.Holiday,
			Trainer:     d.Trainer.detail(),
			Mentor:      d.Mentor.detail(),
			BuddyMentor: d.BuddyMentor.detail(),
		})
	}
	return sub, f.Cohort, nil
}

func (d *detailFile) detail() *domain.EffortDetail {
	if d == nil {
		return nil
	}
	out := &domain.EffortDetail{Notes: d.Notes}
	if d.Hours != nil {
		h := domain.Hours(*d.Hours)
		out.Hours = &h
	}
	return out
}
