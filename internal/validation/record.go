package validation

// StudentRecord is the validated, range-checked form of a student's academic
// marks. Every field is a pointer; nil means the source record did not carry
// the field. A StudentRecord produced by ValidateAndFormat never holds a value
// outside its rule's bounds.
type StudentRecord struct {
	UserID    *string `json:"user_id"`
	ProfileID *string `json:"profile_id"`

	MathMark                     *float64 `json:"math_mark"`
	HomeLanguageMark             *float64 `json:"home_language_mark"`
	FirstAdditionalLanguageMark  *float64 `json:"first_additional_language_mark"`
	SecondAdditionalLanguageMark *float64 `json:"second_additional_language_mark"`
	Subject1Mark                 *float64 `json:"subject1_mark"`
	Subject2Mark                 *float64 `json:"subject2_mark"`
	Subject3Mark                 *float64 `json:"subject3_mark"`
	Subject4Mark                 *float64 `json:"subject4_mark"`
	LifeOrientationMark          *float64 `json:"life_orientation_mark"`
	Average                      *float64 `json:"average"`

	MathLevel                     *int `json:"math_level"`
	HomeLanguageLevel             *int `json:"home_language_level"`
	FirstAdditionalLanguageLevel  *int `json:"first_additional_language_level"`
	SecondAdditionalLanguageLevel *int `json:"second_additional_language_level"`
	Subject1Level                 *int `json:"subject1_level"`
	Subject2Level                 *int `json:"subject2_level"`
	Subject3Level                 *int `json:"subject3_level"`
	Subject4Level                 *int `json:"subject4_level"`
	LifeOrientationLevel          *int `json:"life_orientation_level"`

	APSMark *int `json:"aps_mark"`

	MathType                 *string `json:"math_type"`
	HomeLanguage             *string `json:"home_language"`
	FirstAdditionalLanguage  *string `json:"first_additional_language"`
	SecondAdditionalLanguage *string `json:"second_additional_language"`
	Subject1                 *string `json:"subject1"`
	Subject2                 *string `json:"subject2"`
	Subject3                 *string `json:"subject3"`
	Subject4                 *string `json:"subject4"`
}

// SubjectMarks flattens the percentage marks into a map keyed by field name,
// omitting absent subjects. The matcher consumes this shape.
func (r *StudentRecord) SubjectMarks() map[string]float64 {
	marks := make(map[string]float64)
	put := func(key string, value *float64) {
		if value != nil {
			marks[key] = *value
		}
	}

	put("math_mark", r.MathMark)
	put("home_language_mark", r.HomeLanguageMark)
	put("first_additional_language_mark", r.FirstAdditionalLanguageMark)
	put("second_additional_language_mark", r.SecondAdditionalLanguageMark)
	put("subject1_mark", r.Subject1Mark)
	put("subject2_mark", r.Subject2Mark)
	put("subject3_mark", r.Subject3Mark)
	put("subject4_mark", r.Subject4Mark)
	put("life_orientation_mark", r.LifeOrientationMark)
	put("average", r.Average)

	return marks
}
