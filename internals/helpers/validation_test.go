package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	Title    string   `json:"event_title" validate:"required"`
	Date     string   `json:"event_start_date" validate:"required,ymd"`
	Time     string   `json:"event_start_time" validate:"omitempty,clock"`
	Category string   `json:"event_category" validate:"required,event_category"`
	Tags     []string `json:"event_tags" validate:"omitempty,dive,event_tag"`
}

func validSample() sampleEvent {
	return sampleEvent{Title: "Hackathon", Date: "2026-03-01", Time: "09:30", Category: "Competition", Tags: []string{"coding", "ai-ml"}}
}

func validationFields(t *testing.T, err error) (string, map[string][]string) {
	t.Helper()
	var ae *AppError
	require.True(t, errors.As(err, &ae))
	require.Equal(t, KindValidation, ae.Kind)
	return ae.Message, ae.Fields
}

func TestValidateStructPasses(t *testing.T) {
	assert.NoError(t, ValidateStruct(validSample()))

	s := validSample()
	s.Time = ""
	s.Tags = nil
	assert.NoError(t, ValidateStruct(s))
}

func TestValidateStructUsesJSONKeys(t *testing.T) {
	s := validSample()
	s.Title = ""
	s.Date = "01/03/2026"

	msg, fields := validationFields(t, ValidateStruct(s))
	assert.Equal(t, "event_title is required", msg)
	assert.Contains(t, fields, "event_title")
	assert.Equal(t, []string{"event_start_date must be a date in YYYY-MM-DD format"}, fields["event_start_date"])
}

func TestValidateStructClockAndCategory(t *testing.T) {
	s := validSample()
	s.Time = "25:00"
	_, fields := validationFields(t, ValidateStruct(s))
	assert.Contains(t, fields, "event_start_time")

	s = validSample()
	s.Category = "Party"
	msg, _ := validationFields(t, ValidateStruct(s))
	assert.Contains(t, msg, "Workshop")
}

func TestValidateStructTagMessage(t *testing.T) {
	s := validSample()
	s.Tags = []string{"ok", "bad tag!"}

	msg, fields := validationFields(t, ValidateStruct(s))
	assert.Equal(t, "Invalid tag: bad tag!. Tags must be 2-20 characters long and contain only letters, numbers, and hyphens.", msg)
	assert.Contains(t, fields, "event_tags[1]")
}

func TestIsValidTag(t *testing.T) {
	assert.True(t, IsValidTag("ai-ml"))
	assert.True(t, IsValidTag("AB"))
	assert.False(t, IsValidTag("a"))
	assert.False(t, IsValidTag("this-tag-is-way-too-long"))
	assert.False(t, IsValidTag("under_score"))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, NormalizeTags([]string{" go ", "", "  ", "web"}))
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
}
