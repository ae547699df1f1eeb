package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// APIClient handles communication with the PickemBot Core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Retry configuration
	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano() % 100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeError extracts the error body of a failed response
func decodeError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("API error: %s", errResp.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// SendReaction forwards a resolved poll reaction to the core
func (c *APIClient) SendReaction(event domain.ReactionEvent) error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/reaction", event)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

// ScheduleMatch creates a match and returns the stored record
func (c *APIClient) ScheduleMatch(team1, team2, format string, matchDate time.Time, period, winnerPoints, scorelinePoints int) (*domain.Match, error) {
	req := map[string]interface{}{
		"team1":            team1,
		"team2":            team2,
		"format":           format,
		"match_date":       matchDate.Format(time.RFC3339),
		"period":           period,
		"winner_points":    winnerPoints,
		"scoreline_points": scorelinePoints,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/match", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var matchResp struct {
		Data domain.Match `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matchResp); err != nil {
		return nil, fmt.Errorf("failed to decode match: %w", err)
	}

	return &matchResp.Data, nil
}

// ListMatches retrieves all scheduled matches
func (c *APIClient) ListMatches() ([]domain.Match, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/matches", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var listResp struct {
		Data []domain.Match `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	return listResp.Data, nil
}

// DeleteMatch removes a match by its scheduling key
func (c *APIClient) DeleteMatch(team1, team2, format string, matchDate time.Time) (string, error) {
	req := map[string]string{
		"team1":      team1,
		"team2":      team2,
		"format":     format,
		"match_date": matchDate.Format(time.RFC3339),
	}

	resp, err := c.doRequest(http.MethodDelete, "/api/v1/match", req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var delResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&delResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return delResp.Message, nil
}

// ClearResults reverses every settled result in a period
func (c *APIClient) ClearResults(period int) (string, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/match/result/clear", map[string]int{"period": period})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var clearResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&clearResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return clearResp.Message, nil
}

// ResetPeriod drops the standings rows of one period
func (c *APIClient) ResetPeriod(period int) (string, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/period/reset", map[string]int{"period": period})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var resetResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return resetResp.Message, nil
}

// CreateQuestion creates a bonus question and returns the stored record
func (c *APIClient) CreateQuestion(question, description string, options []string, requiredAnswers, period, points int) (*domain.BonusQuestion, error) {
	req := map[string]interface{}{
		"question":         question,
		"description":      description,
		"options":          options,
		"required_answers": requiredAnswers,
		"period":           period,
		"points":           points,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/bonus", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var questionResp struct {
		Data domain.BonusQuestion `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&questionResp); err != nil {
		return nil, fmt.Errorf("failed to decode question: %w", err)
	}

	return &questionResp.Data, nil
}

// ListQuestions retrieves all bonus questions
func (c *APIClient) ListQuestions() ([]domain.BonusQuestion, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/bonus", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var listResp struct {
		Data []domain.BonusQuestion `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	return listResp.Data, nil
}

// RecordPrediction stores a prediction on behalf of a user
func (c *APIClient) RecordPrediction(userID int64, username, matchID string, optionIndex int) (string, error) {
	req := map[string]interface{}{
		"user_id":      userID,
		"username":     username,
		"match_id":     matchID,
		"option_index": optionIndex,
	}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/prediction", req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var predResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&predResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return predResp.Message, nil
}

// GetPredictions retrieves a user's predictions for a period
func (c *APIClient) GetPredictions(username string, period int) ([]domain.Prediction, error) {
	params := url.Values{}
	params.Set("username", username)
	params.Set("period", strconv.Itoa(period))

	path := fmt.Sprintf("/api/v1/predictions?%s", params.Encode())
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var predResp struct {
		Data []domain.Prediction `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&predResp); err != nil {
		return nil, fmt.Errorf("failed to decode predictions: %w", err)
	}

	return predResp.Data, nil
}

// GetStandings retrieves the ranked leaderboard
func (c *APIClient) GetStandings() ([]domain.Standing, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/standings", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var standingsResp struct {
		Data []domain.Standing `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&standingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode standings: %w", err)
	}

	return standingsResp.Data, nil
}

// RecalculateStandings rebuilds the standings from stored points
func (c *APIClient) RecalculateStandings() (string, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/standings/recalculate", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var recalcResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&recalcResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return recalcResp.Message, nil
}
