package discord

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// StandingsCommand shows the ranked leaderboard
func StandingsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "standings",
		Description: "Show the prediction leaderboard",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			standings, err := client.GetStandings()
			if err != nil {
				return "", err
			}
			if len(standings) == 0 {
				return "No points on the board yet.", nil
			}

			var sb strings.Builder
			for _, entry := range standings {
				name := entry.Username
				if name == "" {
					name = strconv.FormatInt(entry.UserID, 10)
				}

				periods := make([]int, 0, len(entry.Periods))
				for p := range entry.Periods {
					periods = append(periods, p)
				}
				sort.Ints(periods)

				var breakdown strings.Builder
				for _, p := range periods {
					if breakdown.Len() > 0 {
						breakdown.WriteString(", ")
					}
					fmt.Fprintf(&breakdown, "S%d: %d", p, entry.Periods[p])
				}

				fmt.Fprintf(&sb, "**%d.** %s — %d pts (%s)\n", entry.Rank, name, entry.Total, breakdown.String())
			}
			return sb.String(), nil
		}, ResponseConfig{Title: "🏆 Standings", Color: ColorStandings})
	}

	return cmd, handler
}

// RecalculateCommand rebuilds the standings from stored points
func RecalculateCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "recalculate",
		Description:              "Rebuild the standings from recorded points",
		DefaultMemberPermissions: &modPermissions,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			return client.RecalculateStandings()
		}, ResponseConfig{Title: "🔄 Standings Recalculated", Color: ColorModAction})
	}

	return cmd, handler
}

// ClearResultsCommand reverses every settled result in a stage
func ClearResultsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "clear-results",
		Description:              "Reverse all settled results in a stage",
		DefaultMemberPermissions: &modPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "stage",
				Description: "Stage to clear",
				Required:    true,
				MinValue:    &[]float64{1}[0],
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		stage := int(getOptions(i)[0].IntValue())
		handleEmbedResponse(s, i, func() (string, error) {
			return client.ClearResults(stage)
		}, ResponseConfig{Title: "↩️ Results Cleared", Color: ColorModAction})
	}

	return cmd, handler
}

// ResetStageCommand drops the standings rows of one stage
func ResetStageCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "reset-stage",
		Description:              "Drop all standings points for a stage",
		DefaultMemberPermissions: &modPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "stage",
				Description: "Stage to reset",
				Required:    true,
				MinValue:    &[]float64{1}[0],
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		stage := int(getOptions(i)[0].IntValue())
		handleEmbedResponse(s, i, func() (string, error) {
			return client.ResetPeriod(stage)
		}, ResponseConfig{Title: "🧹 Stage Reset", Color: ColorModAction})
	}

	return cmd, handler
}

// PredictForCommand records a prediction on behalf of a user.
// Covers users who cannot react, and manual corrections.
func PredictForCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	options := matchKeyOptions()
	options = append([]*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User the prediction belongs to",
			Required:    true,
		},
	}, options...)
	options = append(options, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "option",
		Description: "Option number on the poll, counted from 1",
		Required:    true,
		MinValue:    &[]float64{1}[0],
	})

	cmd := &discordgo.ApplicationCommand{
		Name:                     "predict-for",
		Description:              "Record a prediction on behalf of a user",
		DefaultMemberPermissions: &modPermissions,
		Options:                  options,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		opts := getOptions(i)
		target := opts[0].UserValue(s)
		optionIndex := int(opts[5].IntValue()) - 1

		date, err := parseMatchDate(opts[4].StringValue())
		if err != nil {
			respondError(s, i, err.Error())
			return
		}

		m, err := findMatch(client, opts[1].StringValue(), opts[2].StringValue(), opts[3].StringValue(), date)
		if err != nil {
			slog.Error("Failed to find match", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		userID, err := strconv.ParseInt(target.ID, 10, 64)
		if err != nil {
			respondError(s, i, MsgGenericError)
			return
		}

		msg, err := client.RecordPrediction(userID, target.Username, m.ID.String(), optionIndex)
		if err != nil {
			slog.Error("Failed to record prediction", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed("✍️ Prediction Recorded",
			fmt.Sprintf("%s for **%s**.", msg, target.Username),
			ColorModAction, FooterPickemBotMod))
	}

	return cmd, handler
}

// PredictionsCommand shows a user's predictions for a stage
func PredictionsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "predictions",
		Description: "Show a user's predictions for a stage",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "stage",
				Description: "Stage to look up",
				Required:    true,
				MinValue:    &[]float64{1}[0],
			},
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to look up, defaults to you",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		opts := getOptions(i)
		stage := int(opts[0].IntValue())

		target := getInteractionUser(i)
		if len(opts) > 1 {
			target = opts[1].UserValue(s)
		}

		predictions, err := client.GetPredictions(target.Username, stage)
		if err != nil {
			slog.Error("Failed to fetch predictions", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if len(predictions) == 0 {
			sendEmbed(s, i, createEmbed("🔮 Predictions",
				fmt.Sprintf("%s has no predictions for stage %d.", target.Username, stage),
				ColorMatchPoll, ""))
			return
		}

		var sb strings.Builder
		for _, p := range predictions {
			pts := ""
			if p.Points != 0 {
				pts = fmt.Sprintf(" (+%d)", p.Points)
			}
			fmt.Fprintf(&sb, "• %s %s%s\n", p.Winner, p.Scoreline, pts)
		}

		sendEmbed(s, i, createEmbed(
			fmt.Sprintf("🔮 %s — Stage %d", target.Username, stage),
			sb.String(), ColorMatchPoll, ""))
	}

	return cmd, handler
}
