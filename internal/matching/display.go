package matching

import "strings"

// DisplayMatch is the presentation shape of a match: renamed fields and an
// uppercased institution type. No scoring logic lives here.
type DisplayMatch struct {
	ProgramID          uint       `json:"program_id"`
	ProgramName        string     `json:"program_name"`
	Institution        string     `json:"institution"`
	InstitutionType    string     `json:"institution_type"`
	RequiredAPS        int        `json:"required_aps"`
	MatchScore         int        `json:"match_score"`
	Confidence         Confidence `json:"confidence"`
	SuccessProbability int        `json:"success_probability"`
	Flags              []Flag     `json:"flags"`
	Reasons            []string   `json:"reasons"`
}

// FormatForDisplay adapts ranked matches for the display layer, preserving
// order.
func FormatForDisplay(matches []Match) []DisplayMatch {
	formatted := make([]DisplayMatch, 0, len(matches))
	for _, match := range matches {
		formatted = append(formatted, DisplayMatch{
			ProgramID:          match.ProgramID,
			ProgramName:        match.Qualification,
			Institution:        match.InstitutionName,
			InstitutionType:    strings.ToUpper(string(match.InstitutionType)),
			RequiredAPS:        match.RequiredAPS,
			MatchScore:         match.Score,
			Confidence:         match.Confidence,
			SuccessProbability: match.SuccessProbability,
			Flags:              match.Flags,
			Reasons:            match.WhyMatched,
		})
	}
	return formatted
}
