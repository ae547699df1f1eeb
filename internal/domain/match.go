package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchFormat identifies the best-of-N format of a match
type MatchFormat string

const (
	FormatBO1 MatchFormat = "BO1"
	FormatBO3 MatchFormat = "BO3"
	FormatBO5 MatchFormat = "BO5"
)

// OptionCount returns how many poll options the format produces
func (f MatchFormat) OptionCount() int {
	switch f {
	case FormatBO1:
		return 2
	case FormatBO3:
		return 4
	case FormatBO5:
		return 6
	}
	return 0
}

// Valid reports whether the format is one of the supported values
func (f MatchFormat) Valid() bool {
	return f == FormatBO1 || f == FormatBO3 || f == FormatBO5
}

// DefaultWinnerPoints returns the points awarded for a correct winner
// when the match carries no explicit override
func (f MatchFormat) DefaultWinnerPoints() int {
	switch f {
	case FormatBO1:
		return 1
	case FormatBO3:
		return 2
	case FormatBO5:
		return 3
	}
	return 0
}

// DefaultScorelineBonus returns the bonus for a correct scoreline
// when the match carries no explicit override. BO1 has no scoreline.
func (f MatchFormat) DefaultScorelineBonus() int {
	switch f {
	case FormatBO3:
		return 1
	case FormatBO5:
		return 2
	}
	return 0
}

// Match represents one scheduled best-of-N contest.
// Winner and Scoreline are either both empty or both set; settlement
// fills them exactly once and ClearResults empties them again.
type Match struct {
	ID              uuid.UUID   `json:"id"`
	Team1           string      `json:"team1"`
	Team2           string      `json:"team2"`
	Format          MatchFormat `json:"format"`
	MatchDate       time.Time   `json:"match_date"`
	Period          int         `json:"period"`
	WinnerPoints    int         `json:"winner_points,omitempty"`
	ScorelinePoints int         `json:"scoreline_points,omitempty"`
	Winner          string      `json:"winner,omitempty"`
	Scoreline       string      `json:"scoreline,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Settled reports whether a result has been recorded for the match
func (m *Match) Settled() bool {
	return m.Winner != ""
}

// WinnerAward returns the points for a correct winner pick, honoring
// the per-match override when set
func (m *Match) WinnerAward() int {
	if m.WinnerPoints != 0 {
		return m.WinnerPoints
	}
	return m.Format.DefaultWinnerPoints()
}

// ScorelineAward returns the bonus for a correct scoreline pick,
// honoring the per-match override when set
func (m *Match) ScorelineAward() int {
	if m.ScorelinePoints != 0 {
		return m.ScorelinePoints
	}
	return m.Format.DefaultScorelineBonus()
}
