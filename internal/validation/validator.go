// Package validation converts untyped academic-record maps into strictly
// typed, range-checked student records. It is a pure leaf layer: no I/O, no
// shared state, and malformed input is reported through structured results
// rather than errors.
package validation

import "fmt"

// Result is the outcome of validating one raw record. FormattedData is
// populated if and only if Errors is empty.
type Result struct {
	IsValid       bool           `json:"is_valid"`
	Errors        []string       `json:"errors"`
	Warnings      []string       `json:"warnings"`
	FormattedData *StudentRecord `json:"formatted_data"`
}

// fieldRule binds a raw-record key to the rule that validates it and the
// record field it populates. Adding a field to the schema is one table line.
type fieldRule struct {
	key   string
	apply func(v *Validator, raw any, rec *StudentRecord) (errMsg, warnMsg string)
}

func uuidField(key string, assign func(*StudentRecord, *string)) fieldRule {
	return fieldRule{key: key, apply: func(v *Validator, raw any, rec *StudentRecord) (string, string) {
		value, errMsg := v.uuidRule(raw, key)
		assign(rec, value)
		return errMsg, ""
	}}
}

func markField(key string, assign func(*StudentRecord, *float64)) fieldRule {
	return fieldRule{key: key, apply: func(v *Validator, raw any, rec *StudentRecord) (string, string) {
		value, errMsg := v.markRule(raw, key)
		assign(rec, value)
		return errMsg, ""
	}}
}

// levelField takes a max override; zero means the constraint default.
func levelField(key string, maxLevel int, assign func(*StudentRecord, *int)) fieldRule {
	return fieldRule{key: key, apply: func(v *Validator, raw any, rec *StudentRecord) (string, string) {
		value, errMsg := v.levelRule(raw, key, maxLevel)
		assign(rec, value)
		return errMsg, ""
	}}
}

func apsField(key string, assign func(*StudentRecord, *int)) fieldRule {
	return fieldRule{key: key, apply: func(v *Validator, raw any, rec *StudentRecord) (string, string) {
		value, errMsg := v.apsRule(raw, key)
		assign(rec, value)
		return errMsg, ""
	}}
}

func textField(key string, assign func(*StudentRecord, *string)) fieldRule {
	return fieldRule{key: key, apply: func(v *Validator, raw any, rec *StudentRecord) (string, string) {
		value, warnMsg := v.textRule(raw, key)
		assign(rec, value)
		return "", warnMsg
	}}
}

var fieldRules = []fieldRule{
	uuidField("user_id", func(r *StudentRecord, v *string) { r.UserID = v }),
	uuidField("profile_id", func(r *StudentRecord, v *string) { r.ProfileID = v }),

	markField("math_mark", func(r *StudentRecord, v *float64) { r.MathMark = v }),
	markField("home_language_mark", func(r *StudentRecord, v *float64) { r.HomeLanguageMark = v }),
	markField("first_additional_language_mark", func(r *StudentRecord, v *float64) { r.FirstAdditionalLanguageMark = v }),
	markField("second_additional_language_mark", func(r *StudentRecord, v *float64) { r.SecondAdditionalLanguageMark = v }),
	markField("subject1_mark", func(r *StudentRecord, v *float64) { r.Subject1Mark = v }),
	markField("subject2_mark", func(r *StudentRecord, v *float64) { r.Subject2Mark = v }),
	markField("subject3_mark", func(r *StudentRecord, v *float64) { r.Subject3Mark = v }),
	markField("subject4_mark", func(r *StudentRecord, v *float64) { r.Subject4Mark = v }),
	markField("life_orientation_mark", func(r *StudentRecord, v *float64) { r.LifeOrientationMark = v }),
	markField("average", func(r *StudentRecord, v *float64) { r.Average = v }),

	levelField("math_level", 0, func(r *StudentRecord, v *int) { r.MathLevel = v }),
	levelField("home_language_level", 0, func(r *StudentRecord, v *int) { r.HomeLanguageLevel = v }),
	levelField("first_additional_language_level", 0, func(r *StudentRecord, v *int) { r.FirstAdditionalLanguageLevel = v }),
	levelField("second_additional_language_level", 0, func(r *StudentRecord, v *int) { r.SecondAdditionalLanguageLevel = v }),
	levelField("subject1_level", 0, func(r *StudentRecord, v *int) { r.Subject1Level = v }),
	levelField("subject2_level", 0, func(r *StudentRecord, v *int) { r.Subject2Level = v }),
	levelField("subject3_level", 0, func(r *StudentRecord, v *int) { r.Subject3Level = v }),
	levelField("subject4_level", 0, func(r *StudentRecord, v *int) { r.Subject4Level = v }),
	levelField("life_orientation_level", 0, func(r *StudentRecord, v *int) { r.LifeOrientationLevel = v }),

	apsField("aps_mark", func(r *StudentRecord, v *int) { r.APSMark = v }),

	textField("math_type", func(r *StudentRecord, v *string) { r.MathType = v }),
	textField("home_language", func(r *StudentRecord, v *string) { r.HomeLanguage = v }),
	textField("first_additional_language", func(r *StudentRecord, v *string) { r.FirstAdditionalLanguage = v }),
	textField("second_additional_language", func(r *StudentRecord, v *string) { r.SecondAdditionalLanguage = v }),
	textField("subject1", func(r *StudentRecord, v *string) { r.Subject1 = v }),
	textField("subject2", func(r *StudentRecord, v *string) { r.Subject2 = v }),
	textField("subject3", func(r *StudentRecord, v *string) { r.Subject3 = v }),
	textField("subject4", func(r *StudentRecord, v *string) { r.Subject4 = v }),
}

// ValidateAndFormat runs every field of the raw record through its rule in
// table order, collecting all errors and warnings rather than stopping at the
// first failure. Callers get the complete set to report back to users.
func (v *Validator) ValidateAndFormat(raw map[string]any) Result {
	record := &StudentRecord{}
	errs := []string{}
	warnings := []string{}

	for _, rule := range fieldRules {
		errMsg, warnMsg := rule.apply(v, raw[rule.key], record)
		if errMsg != "" {
			errs = append(errs, errMsg)
		}
		if warnMsg != "" {
			warnings = append(warnings, warnMsg)
		}
	}

	// Record-level re-check. Unreachable if the rule table is intact; if it
	// ever fires, the table itself has a defect.
	if record.Average != nil && (*record.Average < v.constraints.MarkMin || *record.Average > v.constraints.MarkMax) {
		errs = append(errs, fmt.Sprintf("average must be between %g and %g", v.constraints.MarkMin, v.constraints.MarkMax))
	}

	result := Result{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
	if result.IsValid {
		result.FormattedData = record
	}

	return result
}
