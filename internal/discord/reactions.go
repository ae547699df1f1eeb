package discord

import (
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

func (b *Bot) messageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	username := ""
	if r.Member != nil && r.Member.User != nil {
		username = r.Member.User.Username
	}
	b.handleReaction(s, r.MessageReaction, username, false)
}

func (b *Bot) messageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	// Removal payloads carry no member; resolve the name separately
	b.handleReaction(s, r.MessageReaction, b.lookupUsername(s, r.UserID), true)
}

// handleReaction resolves a reaction against the tracked polls and
// forwards it to the core. Reactions on untracked messages and emojis
// a poll does not use are ignored.
func (b *Bot) handleReaction(s *discordgo.Session, r *discordgo.MessageReaction, username string, removed bool) {
	if s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}

	tracked, ok := b.Polls.Resolve(r.MessageID)
	if !ok {
		return
	}

	emoji := r.Emoji.Name
	confirm := false
	optionIndex := 0

	if tracked.Ref.Kind == domain.PollKindBonus &&
		tracked.Ref.Phase == domain.PhaseResult &&
		emoji == ConfirmEmoji {
		confirm = true
	} else {
		idx, ok := tracked.OptionIndex(emoji)
		if !ok {
			return
		}
		optionIndex = idx
	}

	userID, err := strconv.ParseInt(r.UserID, 10, 64)
	if err != nil {
		slog.Warn("Unparseable reaction user ID", "user_id", r.UserID)
		return
	}

	event := domain.ReactionEvent{
		UserID:      userID,
		Username:    username,
		Poll:        tracked.Ref,
		OptionIndex: optionIndex,
		Confirm:     confirm,
		Removed:     removed,
	}

	if err := b.Client.SendReaction(event); err != nil {
		slog.Error("Failed to forward reaction",
			"poll", tracked.Ref.Key(),
			"user_id", userID,
			"removed", removed,
			"error", err)
	}
}

// lookupUsername resolves a user's name from state, falling back to
// the API. Returns empty on failure; the core upserts names
// opportunistically and tolerates a blank.
func (b *Bot) lookupUsername(s *discordgo.Session, userID string) string {
	u, err := s.User(userID)
	if err != nil {
		slog.Warn("Failed to resolve username", "user_id", userID, "error", err)
		return ""
	}
	return u.Username
}
