package validation

import (
	"fmt"
	"time"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts YYYY-MM-DD, datetime-local and RFC 3339 values. Empty
// input reports ok=false with no error.
func parseDate(s string) (time.Time, bool, error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognised date %q", s)
}

// date parses s and records a violation when it is malformed.
func (c *collector) date(field, label, s string) (time.Time, bool) {
	t, ok, err := parseDate(s)
	if err != nil {
		c.add(field, label+" is not a valid date.")
	}
	return t, ok
}

// Resume checks a resume before it is saved.
func (v *Validator) Resume(r domain.Resume) error {
	var c collector
	if err := c.merge(v.Struct(r)); err != nil {
		return err
	}
	now := v.now()

	for i, w := range r.WorkExperience {
		prefix := fmt.Sprintf("Work experience %d: ", i+1)
		field := fmt.Sprintf("workExperience[%d]", i)
		start, hasStart := c.date(field+".startDate", prefix+"Start date", w.StartDate)
		end, hasEnd := c.date(field+".endDate", prefix+"End date", w.EndDate)
		if hasStart && hasEnd && !start.Before(end) {
			c.add(field+".startDate", prefix+"Start date must be before end date.")
		}
		if hasEnd && end.After(now) {
			c.add(field+".endDate", prefix+"End date cannot be in the future.")
		}
		if hasStart && start.After(now) {
			c.add(field+".startDate", prefix+"Start date cannot be in the future.")
		}
	}

	for i, e := range r.Education {
		prefix := fmt.Sprintf("Education %d: ", i+1)
		field := fmt.Sprintf("education[%d]", i)
		start, hasStart := c.date(field+".startDate", prefix+"Start date", e.StartDate)
		grad, hasGrad := c.date(field+".graduationDate", prefix+"Graduation date", e.GraduationDate)
		if hasStart && hasGrad && !start.Before(grad) {
			c.add(field+".startDate", prefix+"Start date must be before graduation date.")
		}
		if hasStart && start.After(now) {
			c.add(field+".startDate", prefix+"Start date cannot be in the future.")
		}
	}
	return c.err()
}

// Job checks a job posting before it is created or updated.
func (v *Validator) Job(j domain.JobPosting) error {
	var c collector
	if err := c.merge(v.Struct(j)); err != nil {
		return err
	}
	deadline, ok := c.date("deadline", "Deadline", j.Deadline)
	if !ok || !deadline.After(v.now()) {
		c.add("deadline", "Deadline must be in the future.")
	}
	return c.err()
}

// Company checks a company profile before it is saved.
func (v *Validator) Company(p domain.CompanyProfile) error {
	return v.Struct(p)
}

// Blog checks a blog post before it is published.
func (v *Validator) Blog(b domain.Blog) error {
	return v.Struct(b)
}

// InterviewDate requires the interview to be scheduled after now.
func (v *Validator) InterviewDate(date string) error {
	var c collector
	t, ok := c.date("Date", "Interview date", date)
	if !ok || !t.After(v.now()) {
		c.add("Date", "Interview date should be in the future.")
	}
	return c.err()
}
