package domain

import (
	"time"

	"github.com/google/uuid"
)

// BonusQuestion is one multi/single-answer trivia item. CorrectAnswers
// accumulates incrementally as a moderator marks options; Finalized is
// set once the confirm signal scores all stored answers.
type BonusQuestion struct {
	ID              uuid.UUID `json:"id"`
	Question        string    `json:"question"`
	Description     string    `json:"description,omitempty"`
	Options         []string  `json:"options"`
	RequiredAnswers int       `json:"required_answers"`
	Period          int       `json:"period"`
	Points          int       `json:"points"`
	CorrectAnswers  []string  `json:"correct_answers,omitempty"`
	Finalized       bool      `json:"finalized"`
	CreatedAt       time.Time `json:"created_at"`
}

// BonusAnswer is one user's accumulated answer set for one question.
// Selections never exceed the question's RequiredAnswers; adds beyond
// the cap are rejected, not truncated.
type BonusAnswer struct {
	UserID     int64     `json:"user_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Period     int       `json:"period"`
	Selections []string  `json:"selections"`
	Points     int       `json:"points"`
}

// HasSelection reports whether the answer already contains the option
func (a *BonusAnswer) HasSelection(option string) bool {
	for _, s := range a.Selections {
		if s == option {
			return true
		}
	}
	return false
}
