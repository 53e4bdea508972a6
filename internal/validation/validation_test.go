package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/formstate"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(func() time.Time { return fixedNow })
	require.NoError(t, err)
	return v
}

func validResume() domain.Resume {
	return domain.Resume{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PhoneNumber:  "0123456789",
		EmailAddress: "ada@example.com",
		Address:      "12 Analytical St",
	}
}

func messages(t *testing.T, err error) []string {
	t.Helper()
	ve, ok := AsError(err)
	require.True(t, ok, "expected *validation.Error, got %v", err)
	return ve.Messages()
}

func TestResume_Valid(t *testing.T) {
	v := newValidator(t)
	r := validResume()
	r.WorkExperience = []domain.WorkExperience{{StartDate: "2019-01-01", EndDate: "2021-06-30"}}
	r.Education = []domain.Education{{StartDate: "2012-09-01", GraduationDate: "2016-06-30"}}

	assert.NoError(t, v.Resume(r))
}

func TestResume_FutureWorkExperience(t *testing.T) {
	v := newValidator(t)
	r := validResume()
	r.WorkExperience = []domain.WorkExperience{{StartDate: "2030-01-01", EndDate: "2030-06-01"}}

	msgs := messages(t, v.Resume(r))

	assert.Contains(t, msgs, "Work experience 1: Start date cannot be in the future.")
	assert.Contains(t, msgs, "Work experience 1: End date cannot be in the future.")
	assert.NotContains(t, msgs, "Work experience 1: Start date must be before end date.")
}

func TestResume_EndBeforeStart(t *testing.T) {
	v := newValidator(t)
	r := validResume()
	r.WorkExperience = []domain.WorkExperience{
		{StartDate: "2018-01-01", EndDate: "2018-02-01"},
		{StartDate: "2020-01-01", EndDate: "2019-01-01"},
	}

	msgs := messages(t, v.Resume(r))

	assert.Equal(t, []string{"Work experience 2: Start date must be before end date."}, msgs)
}

func TestResume_Education(t *testing.T) {
	v := newValidator(t)
	r := validResume()
	r.Education = []domain.Education{{StartDate: "2027-09-01", GraduationDate: "2027-01-01"}}

	msgs := messages(t, v.Resume(r))

	assert.Equal(t, []string{
		"Education 1: Start date must be before graduation date.",
		"Education 1: Start date cannot be in the future.",
	}, msgs)
}

func TestResume_UnparseableDate(t *testing.T) {
	v := newValidator(t)
	r := validResume()
	r.WorkExperience = []domain.WorkExperience{{StartDate: "last spring"}}

	msgs := messages(t, v.Resume(r))

	assert.Equal(t, []string{"Work experience 1: Start date is not a valid date."}, msgs)
}

func TestResume_PhoneNumber(t *testing.T) {
	v := newValidator(t)
	for _, phone := range []string{"", "12345", "01234567890", "01234abcde"} {
		r := validResume()
		r.PhoneNumber = phone

		msgs := messages(t, v.Resume(r))

		assert.Equal(t, []string{"Phone number must be 10 digits long"}, msgs, "phone %q", phone)
	}
}

func TestResume_CollectsEverything(t *testing.T) {
	v := newValidator(t)
	r := validResume()
	r.PhoneNumber = "1"
	r.WorkExperience = []domain.WorkExperience{{StartDate: "2030-01-01", EndDate: "2029-01-01"}}

	msgs := messages(t, v.Resume(r))

	assert.Len(t, msgs, 4)
	assert.Equal(t, "Phone number must be 10 digits long", msgs[0])
}

func TestJob_Deadline(t *testing.T) {
	v := newValidator(t)
	job := domain.JobPosting{Title: "Go dev", Description: "d", Location: "Remote", RequireEmployee: 1}

	job.Deadline = "2026-12-31"
	assert.NoError(t, v.Job(job))

	for _, d := range []string{"2026-03-01T12:00:00Z", "2025-01-01", ""} {
		job.Deadline = d
		assert.Equal(t, []string{"Deadline must be in the future."}, messages(t, v.Job(job)), "deadline %q", d)
	}
}

func TestJob_RequiredFields(t *testing.T) {
	v := newValidator(t)

	msgs := messages(t, v.Job(domain.JobPosting{Deadline: "2027-01-01", RequireEmployee: 1}))

	assert.ElementsMatch(t, []string{
		"title is required",
		"description is required",
		"location is required",
	}, msgs)
}

func TestInterviewDate(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.InterviewDate("2026-03-02"))
	assert.Error(t, v.InterviewDate("2026-02-28"))
	assert.Error(t, v.InterviewDate(""))
}

func TestAccountChecks(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.NewPassword("longenough"))
	assert.Equal(t, []string{"Password must be at least 8 characters long."}, messages(t, v.NewPassword("short")))

	assert.NoError(t, v.PasswordsMatch("a", "a"))
	assert.Error(t, v.PasswordsMatch("a", "b"))

	assert.NoError(t, v.Email("ada@example.com"))
	assert.Error(t, v.Email("ada@"))

	assert.NoError(t, v.VerificationCode("123456"))
	assert.Error(t, v.VerificationCode("12345a"))
}

func TestShape(t *testing.T) {
	v := newValidator(t)

	tree := formstate.ResumeShape.Empty()
	assert.NoError(t, v.Shape(KindResume, tree))

	tree["skills"] = "go, sql"
	err := v.Shape(KindResume, tree)
	ve, ok := AsError(err)
	require.True(t, ok)
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, "skills", ve.Violations[0].Field)

	assert.NoError(t, v.Shape(KindJob, formstate.JobPostingShape.Empty()))
	assert.NoError(t, v.Shape(KindCompany, formstate.CompanyProfileShape.Empty()))
	assert.NoError(t, v.Shape(KindBlog, formstate.BlogShape.Empty()))
}

func TestJoin(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, Join(nil, v.Email("ada@example.com")))

	msgs := messages(t, Join(v.Email("nope"), v.PasswordsMatch("a", "b"), v.Email("")))
	assert.Equal(t, []string{"Please enter a valid email address.", "Passwords do not match."}, msgs)
}
