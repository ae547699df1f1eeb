// Package poll translates between a match's ordered option list and
// the structured (winner, scoreline) pair a reaction selects. The
// ordering is load-bearing: the same ordinal position reconstructs the
// prediction when a result is recorded later, so encoding must stay
// order-stable and deterministic per format.
package poll

import (
	"fmt"
	"strings"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// EncodeOptions returns the ordered option strings for a match.
// Winner-favoring options are listed before the trailing losing
// options per side: BO3 is 2-0, 2-1, 2-1, 2-0 and BO5 is 3-0 .. 3-0.
func EncodeOptions(team1, team2 string, format domain.MatchFormat) ([]string, error) {
	switch format {
	case domain.FormatBO1:
		return []string{
			team1 + " wins",
			team2 + " wins",
		}, nil
	case domain.FormatBO3:
		return []string{
			team1 + " 2-0",
			team1 + " 2-1",
			team2 + " 2-1",
			team2 + " 2-0",
		}, nil
	case domain.FormatBO5:
		return []string{
			team1 + " 3-0",
			team1 + " 3-1",
			team1 + " 3-2",
			team2 + " 3-2",
			team2 + " 3-1",
			team2 + " 3-0",
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
}

// Select returns the option at the given index, defending against
// stale reaction sets after a format change.
func Select(options []string, index int) (string, error) {
	if index < 0 || index >= len(options) {
		return "", fmt.Errorf("%w: index %d of %d options", domain.ErrInvalidSelection, index, len(options))
	}
	return options[index], nil
}

// Decode splits an option string into its winner and scoreline tokens.
// The split is structural, on the first separating space: the winner
// token may not contain spaces and the scoreline token never starts
// with one. For BO1 the scoreline token is the literal "wins".
func Decode(option string) (winner, scoreline string, err error) {
	winner, scoreline, ok := strings.Cut(option, " ")
	if !ok || winner == "" || scoreline == "" {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidSelection, option)
	}
	return winner, scoreline, nil
}
