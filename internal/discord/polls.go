package discord

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/poll"
)

const (
	// DefaultPollTrackerSize bounds how many live polls the bot keeps
	// resolvable. Old entries are evicted LRU-first; reactions on an
	// evicted poll are dropped with a warning.
	DefaultPollTrackerSize = 512

	// ConfirmEmoji finalizes a bonus result poll
	ConfirmEmoji = "✅"
)

// matchEmojiSets maps a match format to its ordered reaction emojis.
// Position is load-bearing: emoji i selects option i of the encoded
// option list, team1-favoring first.
var matchEmojiSets = map[domain.MatchFormat][]string{
	domain.FormatBO1: {"🟦", "🟥"},
	domain.FormatBO3: {"🟦", "🔵", "🔴", "🟥"},
	domain.FormatBO5: {"🟦", "🔵", "💙", "❤️", "🔴", "🟥"},
}

// numberEmojis are the ordered reaction emojis for bonus options
var numberEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// TrackedPoll is one live poll message the bot can resolve reactions
// against
type TrackedPoll struct {
	Ref    domain.PollRef
	Emojis []string
}

// OptionIndex maps a reaction emoji to its option ordinal.
// Returns -1, false for emojis the poll does not use.
func (p TrackedPoll) OptionIndex(emoji string) (int, bool) {
	for i, e := range p.Emojis {
		if e == emoji {
			return i, true
		}
	}
	return -1, false
}

// PollTracker maps Discord message IDs to the polls they render.
// Safe for concurrent use by the session's event goroutines.
type PollTracker struct {
	mu    sync.Mutex
	cache *lru.Cache[string, TrackedPoll]
}

// NewPollTracker creates a tracker bounded to size entries
func NewPollTracker(size int) (*PollTracker, error) {
	cache, err := lru.New[string, TrackedPoll](size)
	if err != nil {
		return nil, err
	}
	return &PollTracker{cache: cache}, nil
}

// Track registers a poll message for reaction resolution
func (t *PollTracker) Track(messageID string, ref domain.PollRef, emojis []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.Add(messageID, TrackedPoll{Ref: ref, Emojis: emojis})
}

// Resolve looks up the poll rendered by a message
func (t *PollTracker) Resolve(messageID string) (TrackedPoll, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cache.Get(messageID)
}

// matchPollEmojis returns the reaction set for a match format
func matchPollEmojis(format domain.MatchFormat) ([]string, error) {
	emojis, ok := matchEmojiSets[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}
	return emojis, nil
}

// bonusPollEmojis returns the reaction set for a bonus question
func bonusPollEmojis(optionCount int) ([]string, error) {
	if optionCount < 1 || optionCount > len(numberEmojis) {
		return nil, fmt.Errorf("%w: %d options", domain.ErrInvalidInput, optionCount)
	}
	return numberEmojis[:optionCount], nil
}

// CreateMatchPoll posts a match poll embed, seeds its reactions, and
// tracks the message for reaction resolution
func (b *Bot) CreateMatchPoll(s *discordgo.Session, channelID string, m *domain.Match, phase domain.PollPhase) error {
	options, err := poll.EncodeOptions(m.Team1, m.Team2, m.Format)
	if err != nil {
		return err
	}
	emojis, err := matchPollEmojis(m.Format)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s vs %s (%s)", m.Team1, m.Team2, m.Format)
	if phase == domain.PhaseResult {
		title = "Result: " + title
	}

	var sb strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&sb, "%s  %s\n", emojis[i], opt)
	}
	if phase == domain.PhasePrediction {
		sb.WriteString("\nReact to lock in your pick!")
	} else {
		sb.WriteString("\nMods: react with the final result.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: sb.String(),
		Color:       ColorMatchPoll,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Stage %d • %s", m.Period, m.MatchDate.Format("Jan 2 15:04 MST")),
		},
	}

	msg, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return fmt.Errorf("failed to post match poll: %w", err)
	}

	for _, e := range emojis {
		if err := s.MessageReactionAdd(channelID, msg.ID, e); err != nil {
			slog.Warn("Failed to seed poll reaction", "emoji", e, "error", err)
		}
	}

	b.Polls.Track(msg.ID, domain.PollRef{
		Kind:  domain.PollKindMatch,
		ID:    m.ID,
		Phase: phase,
	}, emojis)

	return nil
}

// CreateBonusPoll posts a bonus question poll embed, seeds its
// reactions, and tracks the message. Result polls additionally carry
// the confirm emoji that finalizes scoring.
func (b *Bot) CreateBonusPoll(s *discordgo.Session, channelID string, q *domain.BonusQuestion, phase domain.PollPhase) error {
	emojis, err := bonusPollEmojis(len(q.Options))
	if err != nil {
		return err
	}

	title := q.Question
	if phase == domain.PhaseResult {
		title = "Result: " + title
	}

	var sb strings.Builder
	if q.Description != "" {
		sb.WriteString(q.Description)
		sb.WriteString("\n\n")
	}
	for i, opt := range q.Options {
		fmt.Fprintf(&sb, "%s  %s\n", emojis[i], opt)
	}
	if phase == domain.PhasePrediction {
		fmt.Fprintf(&sb, "\nPick %d answer(s)!", q.RequiredAnswers)
	} else {
		fmt.Fprintf(&sb, "\nMods: mark the correct answer(s), then %s to finalize.", ConfirmEmoji)
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: sb.String(),
		Color:       ColorBonusPoll,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Stage %d", q.Period),
		},
	}

	msg, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return fmt.Errorf("failed to post bonus poll: %w", err)
	}

	seed := emojis
	if phase == domain.PhaseResult {
		seed = append(append([]string{}, emojis...), ConfirmEmoji)
	}
	for _, e := range seed {
		if err := s.MessageReactionAdd(channelID, msg.ID, e); err != nil {
			slog.Warn("Failed to seed poll reaction", "emoji", e, "error", err)
		}
	}

	b.Polls.Track(msg.ID, domain.PollRef{
		Kind:  domain.PollKindBonus,
		ID:    q.ID,
		Phase: phase,
	}, emojis)

	return nil
}
