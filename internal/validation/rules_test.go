package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkRule(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	value, errMsg := v.markRule(nil, "math_mark")
	require.Nil(t, value)
	require.Empty(t, errMsg)

	value, errMsg = v.markRule("", "math_mark")
	require.Nil(t, value)
	require.Empty(t, errMsg)

	value, errMsg = v.markRule(72.456, "math_mark")
	require.Empty(t, errMsg)
	require.NotNil(t, value)
	require.Equal(t, 72.46, *value)

	value, errMsg = v.markRule("88.5", "math_mark")
	require.Empty(t, errMsg)
	require.Equal(t, 88.5, *value)

	for _, raw := range []any{101, -1, "abc", true, "1e999"} {
		value, errMsg = v.markRule(raw, "math_mark")
		require.Nil(t, value, "raw %v", raw)
		require.Equal(t, "math_mark must be a number between 0 and 100", errMsg)
	}
}

func TestLevelRuleRejectsNonIntegers(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	value, errMsg := v.levelRule(3.5, "math_level", 0)
	require.Nil(t, value)
	require.Equal(t, "math_level must be an integer between 0 and 7", errMsg)

	value, errMsg = v.levelRule(7, "math_level", 0)
	require.Empty(t, errMsg)
	require.Equal(t, 7, *value)

	value, errMsg = v.levelRule(8, "math_level", 0)
	require.Nil(t, value)
	require.NotEmpty(t, errMsg)

	// Per-field override widens the band.
	value, errMsg = v.levelRule(8, "math_level", 9)
	require.Empty(t, errMsg)
	require.Equal(t, 8, *value)
}

func TestAPSRuleBounds(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	value, errMsg := v.apsRule(42, "aps_mark")
	require.Empty(t, errMsg)
	require.Equal(t, 42, *value)

	value, errMsg = v.apsRule("35", "aps_mark")
	require.Empty(t, errMsg)
	require.Equal(t, 35, *value)

	for _, raw := range []any{43, -1, 35.5, "many"} {
		value, errMsg = v.apsRule(raw, "aps_mark")
		require.Nil(t, value, "raw %v", raw)
		require.Equal(t, "aps_mark must be an integer between 0 and 42", errMsg)
	}
}

func TestUUIDRuleStrictness(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	for _, raw := range []any{nil, "", "null", "NULL", "undefined"} {
		value, errMsg := v.uuidRule(raw, "user_id")
		require.Nil(t, value, "raw %v", raw)
		require.Empty(t, errMsg, "raw %v", raw)
	}

	valid := "9f1b3c52-7a86-4a0e-9c1d-2f86a47be915"
	value, errMsg := v.uuidRule(valid, "user_id")
	require.Empty(t, errMsg)
	require.Equal(t, valid, *value)

	mixed := "9F1B3C52-7A86-4A0E-9C1D-2F86A47BE915"
	value, errMsg = v.uuidRule(mixed, "user_id")
	require.Empty(t, errMsg)
	require.Equal(t, mixed, *value)

	rejected := []any{
		"not-a-uuid",
		"9f1b3c52-7a86-1a0e-9c1d-2f86a47be915", // version 1
		"9f1b3c527a864a0e9c1d2f86a47be915",     // no hyphens
		"urn:uuid:9f1b3c52-7a86-4a0e-9c1d-2f86a47be915",
		12345,
	}
	for _, raw := range rejected {
		value, errMsg = v.uuidRule(raw, "user_id")
		require.Nil(t, value, "raw %v", raw)
		require.Equal(t, "user_id must be a valid version 4 UUID", errMsg)
	}
}

func TestTextRuleTruncates(t *testing.T) {
	v := NewValidator(DefaultConstraints())

	value, warning := v.textRule("  Mathematics  ", "subject1")
	require.Empty(t, warning)
	require.Equal(t, "Mathematics", *value)

	long := strings.Repeat("a", 300)
	value, warning = v.textRule(long, "subject1")
	require.Equal(t, "subject1 exceeded 255 characters and was truncated", warning)
	require.Len(t, []rune(*value), 255)

	// Never errors: numbers are stringified.
	value, warning = v.textRule(42, "subject1")
	require.Empty(t, warning)
	require.Equal(t, "42", *value)

	value, warning = v.textRule(nil, "subject1")
	require.Empty(t, warning)
	require.Nil(t, value)
}
