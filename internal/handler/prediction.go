package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/reaction"
)

// RecordPredictionRequest defines a moderator's manual prediction entry
type RecordPredictionRequest struct {
	UserID      int64  `json:"user_id" validate:"required"`
	Username    string `json:"username" validate:"required,max=100"`
	MatchID     string `json:"match_id" validate:"required,uuid"`
	OptionIndex int    `json:"option_index" validate:"gte=0"`
}

// HandleRecordPrediction stores a prediction on behalf of a user
func HandleRecordPrediction(reactionService reaction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordPredictionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record prediction"); err != nil {
			return
		}

		matchID, err := uuid.Parse(req.MatchID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidMatchID)
			return
		}

		err = reactionService.RecordPrediction(r.Context(), req.UserID, req.Username, matchID, req.OptionIndex)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgRecordPredictionFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPredictionRecorded})
	}
}

// HandleListPredictions returns a user's predictions for a period
func HandleListPredictions(reactionService reaction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetQueryParam(r, w, "username")
		if !ok {
			return
		}
		period, ok := GetIntQueryParam(r, w, "period")
		if !ok {
			return
		}

		predictions, err := reactionService.PredictionsForUser(r.Context(), username, period)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListPredictionsFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: predictions})
	}
}
