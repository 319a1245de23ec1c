package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Validator applies the field rules under a fixed constraint set. It holds no
// mutable state and is safe for concurrent use.
type Validator struct {
	constraints Constraints
}

// NewValidator builds a validator bound to the given constraints.
func NewValidator(constraints Constraints) *Validator {
	return &Validator{constraints: constraints}
}

// Constraints returns the bounds this validator was built with.
func (v *Validator) Constraints() Constraints {
	return v.constraints
}

// markRule accepts a percentage mark: null passes through, numbers (or numeric
// strings) must be finite and within bounds, and survivors are rounded to the
// configured precision.
func (v *Validator) markRule(raw any, field string) (*float64, string) {
	value := classify(raw)

	var number float64
	switch value.kind {
	case kindNull:
		return nil, ""
	case kindNumber:
		number = value.num
	case kindString:
		parsed, err := strconv.ParseFloat(value.str, 64)
		if err != nil {
			return nil, v.markError(field)
		}
		number = parsed
	default:
		return nil, v.markError(field)
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, v.markError(field)
	}
	if number < v.constraints.MarkMin || number > v.constraints.MarkMax {
		return nil, v.markError(field)
	}

	rounded := roundTo(number, v.constraints.MarkPrecision)
	return &rounded, ""
}

func (v *Validator) markError(field string) string {
	return fmt.Sprintf("%s must be a number between %g and %g", field, v.constraints.MarkMin, v.constraints.MarkMax)
}

// levelRule accepts an achievement band. Levels are integers only: 3.5 is
// rejected, never floored. maxLevel <= 0 means use the configured maximum.
func (v *Validator) levelRule(raw any, field string, maxLevel int) (*int, string) {
	if maxLevel <= 0 {
		maxLevel = v.constraints.LevelMax
	}
	return v.integerRule(raw, field, v.constraints.LevelMin, maxLevel)
}

// apsRule accepts an admission point score on the configured APS scale.
func (v *Validator) apsRule(raw any, field string) (*int, string) {
	return v.integerRule(raw, field, v.constraints.APSMin, v.constraints.APSMax)
}

func (v *Validator) integerRule(raw any, field string, min, max int) (*int, string) {
	value := classify(raw)

	var number float64
	switch value.kind {
	case kindNull:
		return nil, ""
	case kindNumber:
		number = value.num
	case kindString:
		parsed, err := strconv.ParseFloat(value.str, 64)
		if err != nil {
			return nil, integerError(field, min, max)
		}
		number = parsed
	default:
		return nil, integerError(field, min, max)
	}

	if math.IsNaN(number) || math.IsInf(number, 0) || math.Trunc(number) != number {
		return nil, integerError(field, min, max)
	}

	integer := int(number)
	if integer < min || integer > max {
		return nil, integerError(field, min, max)
	}

	return &integer, ""
}

func integerError(field string, min, max int) string {
	return fmt.Sprintf("%s must be an integer between %d and %d", field, min, max)
}

// uuidRule accepts identifiers: empty values and the literal strings "null"
// and "undefined" pass through as null; anything else must be a canonical
// 36-character RFC 4122 version-4 UUID. No partial acceptance.
func (v *Validator) uuidRule(raw any, field string) (*string, string) {
	value := classify(raw)

	switch value.kind {
	case kindNull:
		return nil, ""
	case kindString:
		candidate := value.str
		switch strings.ToLower(candidate) {
		case "null", "undefined":
			return nil, ""
		}
		if len(candidate) != 36 {
			return nil, uuidError(field)
		}
		parsed, err := uuid.Parse(candidate)
		if err != nil || parsed.Version() != 4 || parsed.Variant() != uuid.RFC4122 {
			return nil, uuidError(field)
		}
		return &candidate, ""
	default:
		return nil, uuidError(field)
	}
}

func uuidError(field string) string {
	return fmt.Sprintf("%s must be a valid version 4 UUID", field)
}

// textRule accepts free-text descriptors. Text is always fixable: values are
// stringified and trimmed, and anything over the length limit is truncated
// with a warning instead of rejected.
func (v *Validator) textRule(raw any, field string) (*string, string) {
	value := classify(raw)

	var text string
	switch value.kind {
	case kindNull:
		return nil, ""
	case kindString:
		text = value.str
	case kindNumber:
		text = strconv.FormatFloat(value.num, 'f', -1, 64)
	default:
		text = strings.TrimSpace(value.str)
		if text == "" {
			return nil, ""
		}
	}

	warning := ""
	if runes := []rune(text); len(runes) > v.constraints.TextMaxLen {
		text = string(runes[:v.constraints.TextMaxLen])
		warning = fmt.Sprintf("%s exceeded %d characters and was truncated", field, v.constraints.TextMaxLen)
	}

	return &text, warning
}

func roundTo(value float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(value*factor) / factor
}
