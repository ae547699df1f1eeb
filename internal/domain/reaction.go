package domain

import "github.com/google/uuid"

// PollKind distinguishes match polls from bonus question polls
type PollKind string

const (
	PollKindMatch PollKind = "match"
	PollKindBonus PollKind = "bonus"
)

// PollPhase distinguishes the public prediction poll from the
// moderator result poll of the same match or question
type PollPhase string

const (
	PhasePrediction PollPhase = "prediction"
	PhaseResult     PollPhase = "result"
)

// PollRef is the opaque poll identity the transport resolves before
// invoking the core. The core never re-derives it from message text.
type PollRef struct {
	Kind  PollKind  `json:"kind" validate:"required,oneof=match bonus"`
	ID    uuid.UUID `json:"id" validate:"required"`
	Phase PollPhase `json:"phase" validate:"required,oneof=prediction result"`
}

// Key returns a stable lock key so events for the same poll are
// processed one at a time
func (r PollRef) Key() string {
	return string(r.Kind) + ":" + r.ID.String()
}

// ReactionEvent is one inbound reaction add or retraction.
// OptionIndex is the ordinal of the selected option in the poll's
// encoded option list. Confirm marks the reserved finalize reaction on
// a bonus result poll; it carries no option index.
type ReactionEvent struct {
	UserID      int64   `json:"user_id" validate:"required"`
	Username    string  `json:"username"`
	Poll        PollRef `json:"poll" validate:"required"`
	OptionIndex int     `json:"option_index" validate:"gte=0"`
	Confirm     bool    `json:"confirm,omitempty"`
	Removed     bool    `json:"removed,omitempty"`
}
