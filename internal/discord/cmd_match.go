package discord

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// modPermissions restricts a command to members who can manage the server
var modPermissions int64 = discordgo.PermissionManageServer

// matchDateLayout is the input format for match dates, interpreted as UTC
const matchDateLayout = "2006-01-02 15:04"

// formatChoices are the selectable match formats
var formatChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Best of 1", Value: string(domain.FormatBO1)},
	{Name: "Best of 3", Value: string(domain.FormatBO3)},
	{Name: "Best of 5", Value: string(domain.FormatBO5)},
}

// matchKeyOptions are the options every command that targets an
// existing match shares
func matchKeyOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "team1",
			Description: "First team",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "team2",
			Description: "Second team",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "format",
			Description: "Match format",
			Required:    true,
			Choices:     formatChoices,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "date",
			Description: "Match date, e.g. 2026-03-14 18:00 (UTC)",
			Required:    true,
		},
	}
}

// parseMatchDate parses the shared date option
func parseMatchDate(value string) (time.Time, error) {
	t, err := time.Parse(matchDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected e.g. 2026-03-14 18:00", value)
	}
	return t.UTC(), nil
}

// findMatch resolves a match by its scheduling key via the core API
func findMatch(client *APIClient, team1, team2, format string, date time.Time) (*domain.Match, error) {
	matches, err := client.ListMatches()
	if err != nil {
		return nil, err
	}
	for i := range matches {
		m := &matches[i]
		if strings.EqualFold(m.Team1, team1) &&
			strings.EqualFold(m.Team2, team2) &&
			string(m.Format) == format &&
			m.MatchDate.Equal(date) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("API error: %s", domain.ErrMsgMatchNotFound)
}

// MatchAddCommand schedules a match and posts its prediction poll
func MatchAddCommand(b *Bot) (*discordgo.ApplicationCommand, CommandHandler) {
	options := append(matchKeyOptions(),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "stage",
			Description: "Tournament stage the match belongs to",
			Required:    true,
			MinValue:    &[]float64{1}[0],
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "winner-points",
			Description: "Override points for a correct winner pick",
			MinValue:    &[]float64{0}[0],
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "scoreline-points",
			Description: "Override bonus for a correct scoreline pick",
			MinValue:    &[]float64{0}[0],
		},
	)

	cmd := &discordgo.ApplicationCommand{
		Name:                     "match-add",
		Description:              "Schedule a match and open its prediction poll",
		DefaultMemberPermissions: &modPermissions,
		Options:                  options,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		opts := getOptions(i)
		team1 := opts[0].StringValue()
		team2 := opts[1].StringValue()
		format := opts[2].StringValue()
		stage := 0
		winnerPoints := 0
		scorelinePoints := 0

		date, err := parseMatchDate(opts[3].StringValue())
		if err != nil {
			respondError(s, i, err.Error())
			return
		}

		for _, o := range opts[4:] {
			switch o.Name {
			case "stage":
				stage = int(o.IntValue())
			case "winner-points":
				winnerPoints = int(o.IntValue())
			case "scoreline-points":
				scorelinePoints = int(o.IntValue())
			}
		}

		m, err := client.ScheduleMatch(team1, team2, format, date, stage, winnerPoints, scorelinePoints)
		if err != nil {
			slog.Error("Failed to schedule match", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if err := b.CreateMatchPoll(s, i.ChannelID, m, domain.PhasePrediction); err != nil {
			slog.Error("Failed to post prediction poll", "match_id", m.ID, "error", err)
			respondError(s, i, "Match scheduled, but the poll could not be posted.")
			return
		}

		msg := fmt.Sprintf("**%s vs %s** (%s) scheduled for stage %d.", m.Team1, m.Team2, m.Format, m.Period)
		sendEmbed(s, i, createEmbed("📅 Match Scheduled", msg, ColorSuccess, FooterPickemBotMod))
	}

	return cmd, handler
}

// MatchResultCommand opens the moderator result poll for a match
func MatchResultCommand(b *Bot) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "match-result",
		Description:              "Open the result poll for a scheduled match",
		DefaultMemberPermissions: &modPermissions,
		Options:                  matchKeyOptions(),
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		opts := getOptions(i)
		date, err := parseMatchDate(opts[3].StringValue())
		if err != nil {
			respondError(s, i, err.Error())
			return
		}

		m, err := findMatch(client, opts[0].StringValue(), opts[1].StringValue(), opts[2].StringValue(), date)
		if err != nil {
			slog.Error("Failed to find match", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if err := b.CreateMatchPoll(s, i.ChannelID, m, domain.PhaseResult); err != nil {
			slog.Error("Failed to post result poll", "match_id", m.ID, "error", err)
			respondError(s, i, MsgGenericError)
			return
		}

		msg := fmt.Sprintf("Result poll for **%s vs %s** is open.", m.Team1, m.Team2)
		sendEmbed(s, i, createEmbed("🏁 Result Poll", msg, ColorModAction, FooterPickemBotMod))
	}

	return cmd, handler
}

// MatchDeleteCommand removes a match and its predictions
func MatchDeleteCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "match-delete",
		Description:              "Delete a scheduled match and its predictions",
		DefaultMemberPermissions: &modPermissions,
		Options:                  matchKeyOptions(),
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := getOptions(i)
		team1 := opts[0].StringValue()
		team2 := opts[1].StringValue()
		format := opts[2].StringValue()

		handleEmbedResponse(s, i, func() (string, error) {
			date, err := parseMatchDate(opts[3].StringValue())
			if err != nil {
				return "", err
			}
			msg, err := client.DeleteMatch(team1, team2, format, date)
			if err != nil {
				return "", err
			}
			return msg, nil
		}, ResponseConfig{Title: "🗑️ Match Deleted", Color: ColorModAction})
	}

	return cmd, handler
}

// MatchesCommand lists the scheduled matches
func MatchesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "matches",
		Description: "List scheduled matches",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			matches, err := client.ListMatches()
			if err != nil {
				return "", err
			}
			if len(matches) == 0 {
				return "No matches scheduled.", nil
			}

			var sb strings.Builder
			for _, m := range matches {
				status := "upcoming"
				if m.Settled() {
					status = fmt.Sprintf("**%s %s**", m.Winner, m.Scoreline)
				}
				fmt.Fprintf(&sb, "• %s vs %s (%s) — stage %d, %s — %s\n",
					m.Team1, m.Team2, m.Format, m.Period,
					m.MatchDate.Format("Jan 2 15:04"), status)
			}
			return sb.String(), nil
		}, ResponseConfig{Title: "📅 Matches", Color: ColorMatchPoll})
	}

	return cmd, handler
}
