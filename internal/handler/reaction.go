package handler

import (
	"net/http"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/metrics"
	"github.com/kepran/PickemBot_Go/internal/reaction"
)

// HandleReaction receives one resolved reaction event from a transport
// and routes it through the reaction service
func HandleReaction(reactionService reaction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev domain.ReactionEvent
		if err := DecodeAndValidateRequest(r, w, &ev, "Reaction"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		log.Info("Reaction received",
			"user_id", ev.UserID, "poll", ev.Poll.Key(),
			"phase", ev.Poll.Phase, "option", ev.OptionIndex,
			"removed", ev.Removed, "confirm", ev.Confirm)

		if err := reactionService.HandleReaction(r.Context(), ev); err != nil {
			log.Error(ErrMsgHandleReactionFailed, "error", err)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		if ev.Poll.Kind == domain.PollKindMatch && ev.Poll.Phase == domain.PhasePrediction && !ev.Removed {
			metrics.PredictionsRecorded.Inc()
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgReactionHandled})
	}
}
