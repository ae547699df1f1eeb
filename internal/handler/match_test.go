package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

func TestHandleScheduleMatch(t *testing.T) {
	matchDate := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockMatchService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Unknown Format Rejected By Validation",
			reqBody: ScheduleMatchRequest{
				Team1:     "Navi",
				Team2:     "Faze",
				Format:    "BO7",
				MatchDate: matchDate.Format(time.RFC3339),
				Period:    1,
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Unparseable Date",
			reqBody: ScheduleMatchRequest{
				Team1:     "Navi",
				Team2:     "Faze",
				Format:    "BO3",
				MatchDate: "14-03-2026",
				Period:    1,
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidMatchDate,
		},
		{
			name: "Service Error",
			reqBody: ScheduleMatchRequest{
				Team1:     "Navi",
				Team2:     "Navi",
				Format:    "BO3",
				MatchDate: matchDate.Format(time.RFC3339),
				Period:    1,
			},
			setupMocks: func(ms *MockMatchService) {
				ms.On("Schedule", mock.Anything, "Navi", "Navi", domain.FormatBO3,
					matchDate, 1, 0, 0).Return(nil, domain.ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidInputError,
		},
		{
			name: "Success",
			reqBody: ScheduleMatchRequest{
				Team1:     "Navi",
				Team2:     "Faze",
				Format:    "BO3",
				MatchDate: matchDate.Format(time.RFC3339),
				Period:    2,
			},
			setupMocks: func(ms *MockMatchService) {
				ms.On("Schedule", mock.Anything, "Navi", "Faze", domain.FormatBO3,
					matchDate, 2, 0, 0).Return(&domain.Match{
					ID:     uuid.MustParse("00000000-0000-0000-0000-000000000001"),
					Team1:  "Navi",
					Team2:  "Faze",
					Format: domain.FormatBO3,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"00000000-0000-0000-0000-000000000001"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMatch := &MockMatchService{}
			if tt.setupMocks != nil {
				tt.setupMocks(mockMatch)
			}

			var body []byte
			if s, ok := tt.reqBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.reqBody)
			}

			req := httptest.NewRequest("POST", "/api/v1/match", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler := HandleScheduleMatch(mockMatch)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockMatch.AssertExpectations(t)
		})
	}
}

func TestHandleClearResults(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockMatch := &MockMatchService{}
		mockMatch.On("ClearResults", mock.Anything, 2).Return(nil)

		body, _ := json.Marshal(PeriodRequest{Period: 2})
		req := httptest.NewRequest("POST", "/api/v1/match/result/clear", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler := HandleClearResults(mockMatch)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgResultsCleared)
		mockMatch.AssertExpectations(t)
	})

	t.Run("Missing Period Fails Validation", func(t *testing.T) {
		mockMatch := &MockMatchService{}

		req := httptest.NewRequest("POST", "/api/v1/match/result/clear", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()

		handler := HandleClearResults(mockMatch)
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockMatch.AssertNotCalled(t, "ClearResults", mock.Anything, mock.Anything)
	})
}

func TestHandleResetPeriod(t *testing.T) {
	mockMatch := &MockMatchService{}
	mockMatch.On("ResetStage", mock.Anything, 3).Return(nil)

	body, _ := json.Marshal(PeriodRequest{Period: 3})
	req := httptest.NewRequest("POST", "/api/v1/period/reset", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler := HandleResetPeriod(mockMatch)
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgPeriodReset)
	mockMatch.AssertExpectations(t)
}
