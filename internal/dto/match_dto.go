package dto

import "github.com/masifunde/apsmatch-api/internal/matching"

// MatchQuery carries the optional knobs on the matches endpoints.
type MatchQuery struct {
	Type  string `query:"type" validate:"omitempty,oneof=university tvet"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

// MatchListResponse is the ranked match list for one student.
type MatchListResponse struct {
	UserID       string           `json:"user_id"`
	APSMark      *int             `json:"aps_mark"`
	TotalMatches int              `json:"total_matches"`
	Matches      []matching.Match `json:"matches"`
}

// DisplayMatchListResponse is the display-formatted variant.
type DisplayMatchListResponse struct {
	UserID       string                  `json:"user_id"`
	TotalMatches int                     `json:"total_matches"`
	Matches      []matching.DisplayMatch `json:"matches"`
}
