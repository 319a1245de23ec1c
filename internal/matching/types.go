package matching

// InstitutionType distinguishes the two catalog segments.
type InstitutionType string

const (
	InstitutionUniversity InstitutionType = "university"
	InstitutionTVET       InstitutionType = "tvet"
)

// Confidence is the five-point tier derived from a match's score.
type Confidence string

const (
	ConfidenceVeryLow  Confidence = "very_low"
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very_high"
)

// Flag annotates a match with advisory markers for the display layer.
type Flag string

const (
	FlagMetCutoff               Flag = "met_cutoff"
	FlagExceedsRequirements     Flag = "exceeds_requirements"
	FlagRecommendedVerification Flag = "recommended_verification"
)

// StudentProfile is the matcher's view of a student. APSMark must come from a
// validated record; the engine checks range but never re-validates marks.
type StudentProfile struct {
	UserID       string             `json:"user_id"`
	APSMark      *int               `json:"aps_mark"`
	SubjectMarks map[string]float64 `json:"subject_marks"`
	Interests    []string           `json:"interests,omitempty"`
	CareerGoals  []string           `json:"career_goals,omitempty"`
}

// Program is one immutable catalog entry. Ownership stays with the caller;
// the engine only reads it.
type Program struct {
	ID              uint            `json:"id"`
	Type            InstitutionType `json:"type"`
	Qualification   string          `json:"qualification"`
	InstitutionName string          `json:"institution_name"`
	RequiredAPS     int             `json:"required_aps"`
	Faculty         string          `json:"faculty,omitempty"`
}

// Match is one ranked eligibility result. Created fresh per FindMatches call
// and never mutated afterwards.
type Match struct {
	ProgramID          uint            `json:"program_id"`
	InstitutionType    InstitutionType `json:"institution_type"`
	Qualification      string          `json:"qualification"`
	InstitutionName    string          `json:"institution_name"`
	RequiredAPS        int             `json:"required_aps"`
	Score              int             `json:"matching_score"`
	Confidence         Confidence      `json:"match_confidence"`
	SuccessProbability int             `json:"success_probability"`
	Flags              []Flag          `json:"flags"`
	WhyMatched         []string        `json:"why_matched"`
}
