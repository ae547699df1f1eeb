package domain

import "github.com/google/uuid"

// Prediction is one user's guess for one match. Unique per
// (user, match): a later selection replaces the earlier one in place,
// it never creates a second row. Points start at zero and are mutated
// only by settlement of the match.
type Prediction struct {
	UserID    int64     `json:"user_id"`
	MatchID   uuid.UUID `json:"match_id"`
	Period    int       `json:"period"`
	Winner    string    `json:"winner"`
	Scoreline string    `json:"scoreline"`
	Points    int       `json:"points"`
}
