package bonus

// DefaultQuestionPoints is awarded per correct answer set when the
// question does not name its own value
const DefaultQuestionPoints = 1

// Error context strings for wrapped errors
const (
	ErrContextFailedToBeginTx        = "failed to begin transaction"
	ErrContextFailedToCommitTx       = "failed to commit transaction"
	ErrContextFailedToCreateQuestion = "failed to create bonus question"
	ErrContextFailedToGetAnswer      = "failed to get bonus answer"
	ErrContextFailedToStoreAnswer    = "failed to store bonus answer"
	ErrContextFailedToListAnswers    = "failed to list bonus answers"
	ErrContextFailedToMarkCorrect    = "failed to mark correct answer"
	ErrContextFailedToAwardPoints    = "failed to award bonus points"
	ErrContextFailedToFinalize       = "failed to finalize question"
)
