// Package matching ranks a validated student profile against a program
// catalog by admission eligibility. The engine is pure computation: no I/O,
// no shared state, safe to call concurrently.
package matching

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/masifunde/apsmatch-api/internal/validation"
)

const (
	scoreFloor       = 50
	scoreCeiling     = 100
	probabilityFloor = 30
	comfortMargin    = 5
	strongMathMark   = 70
)

// mathHeavy marks qualifications where a strong mathematics mark is worth
// calling out to the student.
var mathHeavy = regexp.MustCompile(`(?i)math|engineering|computer science`)

// highDemand qualifications get a verification flag so advisors double-check
// programme-specific requirements the APS cutoff does not capture.
var highDemand = []string{"medical", "engineering", "law"}

// Engine scores programs for a student under a fixed APS scale.
type Engine struct {
	apsMin int
	apsMax int
}

// NewEngine builds an engine on the validator's constraint set, so both
// layers agree on what a legal APS is.
func NewEngine(constraints validation.Constraints) *Engine {
	return &Engine{apsMin: constraints.APSMin, apsMax: constraints.APSMax}
}

// FindMatches returns every program the student is eligible for, ranked by
// descending score with ties broken by ascending program id. A program below
// the APS cutoff is omitted, not reported; an empty result is a valid outcome.
func (e *Engine) FindMatches(profile StudentProfile, programs []Program) []Match {
	matches := []Match{}

	if profile.APSMark == nil {
		return matches
	}
	aps := *profile.APSMark
	if aps < e.apsMin || aps > e.apsMax {
		return matches
	}

	for _, program := range programs {
		if aps < program.RequiredAPS {
			continue
		}

		match := e.score(aps, profile, program)
		if match.Score < scoreFloor {
			// The gate already guarantees the floor; this guard only matters
			// if the formula constants ever change underneath it.
			continue
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ProgramID < matches[j].ProgramID
	})

	return matches
}

func (e *Engine) score(aps int, profile StudentProfile, program Program) Match {
	margin := aps - program.RequiredAPS

	// Meeting the cutoff is worth 50; every point of headroom adds score
	// normalized against the full APS span.
	advantage := float64(margin) / float64(e.apsMax)
	score := clamp(int(math.Round(50+advantage*50)), scoreFloor, scoreCeiling)

	probability := int(math.Round(float64(score)*0.7 + 30))
	if probability < probabilityFloor {
		probability = probabilityFloor
	}

	return Match{
		ProgramID:          program.ID,
		InstitutionType:    program.Type,
		Qualification:      program.Qualification,
		InstitutionName:    program.InstitutionName,
		RequiredAPS:        program.RequiredAPS,
		Score:              score,
		Confidence:         confidenceFor(score),
		SuccessProbability: probability,
		Flags:              e.flags(margin, program),
		WhyMatched:         e.reasons(aps, margin, profile, program),
	}
}

func confidenceFor(score int) Confidence {
	switch {
	case score >= 85:
		return ConfidenceVeryHigh
	case score >= 70:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	case score >= 50:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

func (e *Engine) flags(margin int, program Program) []Flag {
	flags := []Flag{FlagMetCutoff}

	if margin > comfortMargin {
		flags = append(flags, FlagExceedsRequirements)
	}

	qualification := strings.ToLower(program.Qualification)
	for _, keyword := range highDemand {
		if strings.Contains(qualification, keyword) {
			flags = append(flags, FlagRecommendedVerification)
			break
		}
	}

	return flags
}

func (e *Engine) reasons(aps, margin int, profile StudentProfile, program Program) []string {
	reasons := []string{}

	if margin > 0 {
		reasons = append(reasons, fmt.Sprintf("Your APS of %d exceeds this programme's requirement of %d by %d points", aps, program.RequiredAPS, margin))
	} else {
		reasons = append(reasons, fmt.Sprintf("Your APS of %d meets this programme's requirement of %d", aps, program.RequiredAPS))
	}

	if mathHeavy.MatchString(program.Qualification) {
		if mathMark, ok := profile.SubjectMarks["math_mark"]; ok && mathMark > strongMathMark {
			reasons = append(reasons, fmt.Sprintf("Your mathematics mark of %.0f%% is a strong fit for this qualification", mathMark))
		}
	}

	return reasons
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
