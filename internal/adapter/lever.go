package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobdigest/internal/model"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// leverCategories represents the categories object in a Lever posting.
type leverCategories struct {
	Team         string   `json:"team"`
	Location     string   `json:"location"`
	Commitment   string   `json:"commitment"`
	AllLocations []string `json:"allLocations"`
}

// leverPosting represents a single posting in the Lever API response.
type leverPosting struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Categories leverCategories `json:"categories"`
	CreatedAt  int64           `json:"createdAt"`
	HostedURL  string          `json:"hostedUrl"`
}

// LeverAdapter fetches postings from the Lever public postings API.
type LeverAdapter struct {
	board       string
	companyName string
	client      *http.Client
}

// NewLeverAdapter creates a new adapter for a Lever board.
func NewLeverAdapter(board string, companyName string, client *http.Client) *LeverAdapter {
	return &LeverAdapter{
		board:       board,
		companyName: companyName,
		client:      client,
	}
}

// FetchPostings retrieves all postings from the Lever board and normalizes
// them into the unified Posting model.
func (a *LeverAdapter) FetchPostings(ctx context.Context) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s?mode=json", leverBaseURL, a.board)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", a.board, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", a.board, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lever fetch for %s: unexpected status %d", a.board, resp.StatusCode)
	}

	var leverPostings []leverPosting
	if err := json.NewDecoder(resp.Body).Decode(&leverPostings); err != nil {
		return nil, fmt.Errorf("lever fetch for %s: %w", a.board, err)
	}

	postings := make([]model.Posting, 0, len(leverPostings))
	for _, lp := range leverPostings {
		// Prefer allLocations when available, fall back to the single location.
		location := lp.Categories.Location
		if len(lp.Categories.AllLocations) > 0 {
			location = strings.Join(lp.Categories.AllLocations, ", ")
		}

		// createdAt is Unix milliseconds.
		var postedAt *time.Time
		if lp.CreatedAt > 0 {
			t := time.UnixMilli(lp.CreatedAt)
			postedAt = &t
		}

		postings = append(postings, model.Posting{
			ID:       fmt.Sprintf("lever:%s:%s", a.board, lp.ID),
			Company:  a.companyName,
			Title:    lp.Text,
			Location: location,
			URL:      lp.HostedURL,
			PostedAt: postedAt,
			Source:   "lever",
		})
	}

	return postings, nil
}
