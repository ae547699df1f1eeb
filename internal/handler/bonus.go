package handler

import (
	"net/http"

	"github.com/kepran/PickemBot_Go/internal/bonus"
	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/logger"
)

// CreateQuestionRequest defines the request to create a bonus question
type CreateQuestionRequest struct {
	Question        string   `json:"question" validate:"required,max=500"`
	Description     string   `json:"description" validate:"max=1000"`
	Options         []string `json:"options" validate:"required,min=2,dive,required"`
	RequiredAnswers int      `json:"required_answers" validate:"required,gte=1"`
	Period          int      `json:"period" validate:"required,gte=1"`
	Points          int      `json:"points" validate:"gte=0"`
}

// HandleCreateQuestion creates a bonus question
func HandleCreateQuestion(bonusService bonus.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateQuestionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create question"); err != nil {
			return
		}

		q := &domain.BonusQuestion{
			Question:        req.Question,
			Description:     req.Description,
			Options:         req.Options,
			RequiredAnswers: req.RequiredAnswers,
			Period:          req.Period,
			Points:          req.Points,
		}
		if err := bonusService.CreateQuestion(r.Context(), q); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgCreateQuestionFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgQuestionCreated, Data: q})
	}
}

// HandleListQuestions returns all bonus questions
func HandleListQuestions(bonusService bonus.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := bonusService.ListQuestions(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListQuestionsFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: questions})
	}
}
