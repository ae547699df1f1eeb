package domain

import "errors"

// Error message string constants - single source of truth for error
// messages. Use these in assert.Contains() checks when testing.
const (
	ErrMsgInvalidSelection = "selection does not map to an option"
	ErrMsgAlreadySettled   = "result has already been recorded"
	ErrMsgPeriodOrdering   = "period ordering could not be resolved"
	ErrMsgAnswerLimit      = "answer limit reached"
	ErrMsgAlreadyFinalized = "question has already been finalized"

	ErrMsgMatchNotFound      = "match not found"
	ErrMsgQuestionNotFound   = "bonus question not found"
	ErrMsgPredictionNotFound = "prediction not found"
	ErrMsgUserNotFound       = "user not found"

	ErrMsgInvalidFormat = "invalid match format"
	ErrMsgInvalidInput  = "invalid input"

	// ErrMsgTxClosed matches pgx's error for rollback after commit
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors. Wrap with fmt.Errorf("%w: %s", domain.ErrXxx,
// details) for additional context; check with errors.Is at boundaries.
var (
	// A reaction that does not map to any option for the poll's
	// format. Reported back to the acting user, never fatal.
	ErrInvalidSelection = errors.New(ErrMsgInvalidSelection)

	// Settlement guard: the result column write found a result already
	// present
	ErrAlreadySettled = errors.New(ErrMsgAlreadySettled)

	// Backfill asked to operate on a period ordering it cannot
	// resolve. Logged; backfill does nothing rather than guess.
	ErrPeriodOrdering = errors.New(ErrMsgPeriodOrdering)

	// Bonus answer set is already at the question's required size
	ErrAnswerLimitReached = errors.New(ErrMsgAnswerLimit)
	ErrAlreadyFinalized   = errors.New(ErrMsgAlreadyFinalized)

	ErrMatchNotFound      = errors.New(ErrMsgMatchNotFound)
	ErrQuestionNotFound   = errors.New(ErrMsgQuestionNotFound)
	ErrPredictionNotFound = errors.New(ErrMsgPredictionNotFound)
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)

	ErrInvalidFormat = errors.New(ErrMsgInvalidFormat)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
)
