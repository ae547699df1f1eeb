package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// findQuestion resolves a bonus question by its text via the core API.
// Matching is case-insensitive on the question prefix; ambiguity is an
// error so a moderator never finalizes the wrong question.
func findQuestion(client *APIClient, text string) (*domain.BonusQuestion, error) {
	questions, err := client.ListQuestions()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(text))
	var found *domain.BonusQuestion
	for i := range questions {
		q := &questions[i]
		if strings.HasPrefix(strings.ToLower(q.Question), needle) {
			if found != nil {
				return nil, fmt.Errorf("multiple questions match %q, be more specific", text)
			}
			found = q
		}
	}
	if found == nil {
		return nil, fmt.Errorf("API error: %s", domain.ErrMsgQuestionNotFound)
	}
	return found, nil
}

// BonusAddCommand creates a bonus question and posts its poll
func BonusAddCommand(b *Bot) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "bonus-add",
		Description:              "Create a bonus question and open its poll",
		DefaultMemberPermissions: &modPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "question",
				Description: "The question text",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "options",
				Description: "Answer options, separated by semicolons",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "answers",
				Description: "How many answers each user picks",
				Required:    true,
				MinValue:    &[]float64{1}[0],
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "stage",
				Description: "Tournament stage the question belongs to",
				Required:    true,
				MinValue:    &[]float64{1}[0],
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "description",
				Description: "Extra context shown under the question",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "points",
				Description: "Points per correct answer",
				MinValue:    &[]float64{0}[0],
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		opts := getOptions(i)
		question := opts[0].StringValue()
		required := int(opts[2].IntValue())
		stage := int(opts[3].IntValue())
		description := ""
		points := 0

		answerOptions := splitOptions(opts[1].StringValue())
		if len(answerOptions) < 2 {
			respondError(s, i, "At least two options are required, separated by semicolons.")
			return
		}

		for _, o := range opts[4:] {
			switch o.Name {
			case "description":
				description = o.StringValue()
			case "points":
				points = int(o.IntValue())
			}
		}

		q, err := client.CreateQuestion(question, description, answerOptions, required, stage, points)
		if err != nil {
			slog.Error("Failed to create question", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if err := b.CreateBonusPoll(s, i.ChannelID, q, domain.PhasePrediction); err != nil {
			slog.Error("Failed to post bonus poll", "question_id", q.ID, "error", err)
			respondError(s, i, "Question created, but the poll could not be posted.")
			return
		}

		msg := fmt.Sprintf("**%s** is live for stage %d.", q.Question, q.Period)
		sendEmbed(s, i, createEmbed("🎁 Bonus Question Posted", msg, ColorSuccess, FooterPickemBotMod))
	}

	return cmd, handler
}

// BonusResultCommand opens the moderator result poll for a question
func BonusResultCommand(b *Bot) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "bonus-result",
		Description:              "Open the result poll for a bonus question",
		DefaultMemberPermissions: &modPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "question",
				Description: "Start of the question text",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		q, err := findQuestion(client, getOptions(i)[0].StringValue())
		if err != nil {
			slog.Error("Failed to find question", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if err := b.CreateBonusPoll(s, i.ChannelID, q, domain.PhaseResult); err != nil {
			slog.Error("Failed to post result poll", "question_id", q.ID, "error", err)
			respondError(s, i, MsgGenericError)
			return
		}

		msg := fmt.Sprintf("Result poll for **%s** is open.", q.Question)
		sendEmbed(s, i, createEmbed("🏁 Result Poll", msg, ColorModAction, FooterPickemBotMod))
	}

	return cmd, handler
}

// splitOptions splits a semicolon-separated option list, trimming
// whitespace and dropping empties
func splitOptions(raw string) []string {
	parts := strings.Split(raw, ";")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}
