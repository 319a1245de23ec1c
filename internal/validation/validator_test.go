package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAndFormatHappyPath(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	result := v.ValidateAndFormat(map[string]any{
		"user_id":            "9f1b3c52-7a86-4a0e-9c1d-2f86a47be915",
		"math_mark":          80.125,
		"math_level":         6,
		"home_language_mark": "67",
		"aps_mark":           35,
		"average":            74.5,
		"math_type":          "Pure Mathematics",
		"home_language":      "isiXhosa",
	})

	require.True(t, result.IsValid)
	require.Empty(t, result.Errors)
	require.Empty(t, result.Warnings)
	require.NotNil(t, result.FormattedData)

	record := result.FormattedData
	require.Equal(t, "9f1b3c52-7a86-4a0e-9c1d-2f86a47be915", *record.UserID)
	require.Equal(t, 80.13, *record.MathMark)
	require.Equal(t, 6, *record.MathLevel)
	require.Equal(t, 67.0, *record.HomeLanguageMark)
	require.Equal(t, 35, *record.APSMark)
	require.Equal(t, "Pure Mathematics", *record.MathType)
	require.Nil(t, record.ProfileID)
	require.Nil(t, record.Subject1Mark)
}

func TestValidateAndFormatCollectsEveryError(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	result := v.ValidateAndFormat(map[string]any{
		"user_id":    "not-a-uuid",
		"math_mark":  101,
		"math_level": 3.5,
		"aps_mark":   -1,
	})

	require.False(t, result.IsValid)
	require.Nil(t, result.FormattedData)
	require.Len(t, result.Errors, 4)
	require.Contains(t, result.Errors, "user_id must be a valid version 4 UUID")
	require.Contains(t, result.Errors, "math_mark must be a number between 0 and 100")
	require.Contains(t, result.Errors, "math_level must be an integer between 0 and 7")
	require.Contains(t, result.Errors, "aps_mark must be an integer between 0 and 42")
}

func TestValidateAndFormatWarningsKeepRecordValid(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	result := v.ValidateAndFormat(map[string]any{
		"subject1":      strings.Repeat("x", 400),
		"subject1_mark": 55,
	})

	require.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	require.NotNil(t, result.FormattedData)
	require.Len(t, []rune(*result.FormattedData.Subject1), 255)
	require.Equal(t, 55.0, *result.FormattedData.Subject1Mark)
}

func TestValidateAndFormatNilRecord(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	result := v.ValidateAndFormat(nil)
	require.True(t, result.IsValid)
	require.NotNil(t, result.FormattedData)
	require.Nil(t, result.FormattedData.APSMark)
}

func TestValidateAndFormatAlternateScale(t *testing.T) {
	constraints := DefaultConstraints()
	constraints.APSMax = 48 // seven-subject scale
	v := NewValidator(constraints)

	result := v.ValidateAndFormat(map[string]any{"aps_mark": 45})
	require.True(t, result.IsValid)
	require.Equal(t, 45, *result.FormattedData.APSMark)

	// The default validator still rejects it.
	result = NewValidator(DefaultConstraints()).ValidateAndFormat(map[string]any{"aps_mark": 45})
	require.False(t, result.IsValid)
}

func TestSubjectMarksFlattening(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	result := v.ValidateAndFormat(map[string]any{
		"math_mark":     80,
		"subject2_mark": 61.5,
	})
	require.True(t, result.IsValid)

	marks := result.FormattedData.SubjectMarks()
	require.Equal(t, map[string]float64{"math_mark": 80, "subject2_mark": 61.5}, marks)
}
