package standings

// Error context strings for wrapped errors
const (
	ErrContextFailedToBeginTx          = "failed to begin transaction"
	ErrContextFailedToCommitTx         = "failed to commit transaction"
	ErrContextFailedToListStandings    = "failed to list standings"
	ErrContextFailedToResolveUsernames = "failed to resolve usernames"
	ErrContextFailedToGetLastPeriod    = "failed to get last interaction period"
	ErrContextFailedToGetMinimum       = "failed to get period minimum"
	ErrContextFailedToGetBackfill      = "failed to get recorded backfill"
	ErrContextFailedToRecordBackfill   = "failed to record backfill"
	ErrContextFailedToWriteStanding    = "failed to write standing"
	ErrContextFailedToSumPredictions   = "failed to sum prediction points"
	ErrContextFailedToSumBonuses       = "failed to sum bonus points"
	ErrContextFailedToListBackfills    = "failed to list backfills"
	ErrContextFailedToResetStandings   = "failed to reset standings"
)
