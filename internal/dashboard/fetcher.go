package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"talentplay/internal/models"
)

// HTTPFetcher fetches the result list over the server's JSON API.
type HTTPFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher against baseURL using the given bearer
// token. client may be nil to use http.DefaultClient.
func NewHTTPFetcher(baseURL, token string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{baseURL: baseURL, token: token, client: client}
}

type resultsResponse struct {
	Success bool                      `json:"success"`
	Results []models.EvaluationResult `json:"results"`
	Error   string                    `json:"error,omitempty"`
}

// FetchResults retrieves all evaluation results.
func (f *HTTPFetcher) FetchResults(ctx context.Context) ([]models.EvaluationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/user-results", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build results request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("results request returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed resultsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode results response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("results request failed: %s", parsed.Error)
	}

	return parsed.Results, nil
}
