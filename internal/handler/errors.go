package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details. Both
// handlers and tests reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"

	ErrMsgHandleReactionFailed   = "Failed to handle reaction"
	ErrMsgScheduleMatchFailed    = "Failed to schedule match"
	ErrMsgListMatchesFailed      = "Failed to list matches"
	ErrMsgDeleteMatchFailed      = "Failed to delete match"
	ErrMsgClearResultsFailed     = "Failed to clear results"
	ErrMsgResetPeriodFailed      = "Failed to reset period"
	ErrMsgCreateQuestionFailed   = "Failed to create bonus question"
	ErrMsgListQuestionsFailed    = "Failed to list bonus questions"
	ErrMsgRecordPredictionFailed = "Failed to record prediction"
	ErrMsgListPredictionsFailed  = "Failed to list predictions"
	ErrMsgGetStandingsFailed     = "Failed to get standings"
	ErrMsgRecalculateFailed      = "Failed to recalculate standings"

	ErrMsgInvalidMatchID   = "Invalid match ID"
	ErrMsgInvalidPeriod    = "Invalid period parameter"
	ErrMsgInvalidUserID    = "Invalid user ID"
	ErrMsgInvalidMatchDate = "Invalid match date"
)

// Success messages for API responses
const (
	MsgReactionHandled     = "Reaction handled"
	MsgMatchScheduled      = "Match scheduled"
	MsgMatchDeleted        = "Match deleted"
	MsgResultsCleared      = "Results cleared"
	MsgPeriodReset         = "Period standings reset"
	MsgQuestionCreated     = "Bonus question created"
	MsgPredictionRecorded  = "Prediction recorded"
	MsgStandingsRecomputed = "Standings recalculated"
)
