package domain

// StandingEntry is a materialized (user, period) points total. It is a
// derived cache of settlement and backfill contributions and must be
// fully recomputable from predictions and bonus answers.
type StandingEntry struct {
	UserID int64 `json:"user_id"`
	Period int   `json:"period"`
	Points int   `json:"points"`
}

// Standing is one row of the ranked leaderboard: a user, their
// per-period breakdown, and the grand total.
type Standing struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username,omitempty"`
	Rank     int         `json:"rank"`
	Periods  map[int]int `json:"periods"`
	Total    int         `json:"total"`
}

// User is a chat-platform participant. The platform ID is the identity
// key; the display name is upserted opportunistically on interaction.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
