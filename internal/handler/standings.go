package handler

import (
	"net/http"

	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/standings"
)

// HandleGetStandings returns the ranked leaderboard
func HandleGetStandings(standingsService standings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := standingsService.Standings(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetStandingsFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: ranking})
	}
}

// HandleRecalculateStandings rebuilds the standings table from stored
// prediction, bonus and backfill points
func HandleRecalculateStandings(standingsService standings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := standingsService.Recalculate(r.Context()); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgRecalculateFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStandingsRecomputed})
	}
}
