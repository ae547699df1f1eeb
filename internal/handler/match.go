package handler

import (
	"net/http"
	"time"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/match"
)

// ScheduleMatchRequest defines the request to schedule a match
type ScheduleMatchRequest struct {
	Team1           string `json:"team1" validate:"required,max=100"`
	Team2           string `json:"team2" validate:"required,max=100"`
	Format          string `json:"format" validate:"required,matchformat"`
	MatchDate       string `json:"match_date" validate:"required"`
	Period          int    `json:"period" validate:"required,gte=1"`
	WinnerPoints    int    `json:"winner_points" validate:"gte=0"`
	ScorelinePoints int    `json:"scoreline_points" validate:"gte=0"`
}

// DeleteMatchRequest identifies a match by its scheduling key
type DeleteMatchRequest struct {
	Team1     string `json:"team1" validate:"required"`
	Team2     string `json:"team2" validate:"required"`
	Format    string `json:"format" validate:"required,matchformat"`
	MatchDate string `json:"match_date" validate:"required"`
}

// PeriodRequest targets an operation at one period
type PeriodRequest struct {
	Period int `json:"period" validate:"required,gte=1"`
}

// HandleScheduleMatch creates a match
func HandleScheduleMatch(matchService match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleMatchRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Schedule match"); err != nil {
			return
		}

		date, err := time.Parse(time.RFC3339, req.MatchDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidMatchDate)
			return
		}

		m, err := matchService.Schedule(r.Context(), req.Team1, req.Team2,
			domain.MatchFormat(req.Format), date, req.Period,
			req.WinnerPoints, req.ScorelinePoints)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgScheduleMatchFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgMatchScheduled, Data: m})
	}
}

// HandleListMatches returns all matches
func HandleListMatches(matchService match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := matchService.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListMatchesFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: matches})
	}
}

// HandleDeleteMatch deletes a match and its predictions
func HandleDeleteMatch(matchService match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteMatchRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Delete match"); err != nil {
			return
		}

		date, err := time.Parse(time.RFC3339, req.MatchDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidMatchDate)
			return
		}

		err = matchService.Delete(r.Context(), req.Team1, req.Team2,
			domain.MatchFormat(req.Format), date)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgDeleteMatchFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMatchDeleted})
	}
}

// HandleClearResults undoes every settled result in a period
func HandleClearResults(matchService match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PeriodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Clear results"); err != nil {
			return
		}

		if err := matchService.ClearResults(r.Context(), req.Period); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgClearResultsFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgResultsCleared})
	}
}

// HandleResetPeriod drops the standings rows of a period
func HandleResetPeriod(matchService match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PeriodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reset period"); err != nil {
			return
		}

		if err := matchService.ResetStage(r.Context(), req.Period); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgResetPeriodFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPeriodReset})
	}
}
