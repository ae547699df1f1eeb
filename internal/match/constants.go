package match

// Error context strings for wrapped errors
const (
	ErrContextFailedToBeginTx         = "failed to begin transaction"
	ErrContextFailedToCommitTx        = "failed to commit transaction"
	ErrContextFailedToCreateMatch     = "failed to create match"
	ErrContextFailedToDeleteMatch     = "failed to delete match"
	ErrContextFailedToListMatches     = "failed to list matches"
	ErrContextFailedToRecordResult    = "failed to record result"
	ErrContextFailedToListPredictions = "failed to list predictions"
	ErrContextFailedToAwardPoints     = "failed to award points"
	ErrContextFailedToReverseAwards   = "failed to reverse awards"
	ErrContextFailedToClearResults    = "failed to clear results"
	ErrContextFailedToResetStage      = "failed to reset stage standings"
)
