package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobdigest/internal/model"
)

const (
	smartRecruitersBaseURL   = "https://api.smartrecruiters.com/v1/companies"
	smartRecruitersPageLimit = 100
	// Cap so a misbehaving totalFound can never loop forever.
	smartRecruitersMaxOffset = 5000
)

// srPostingsResponse is the paginated SmartRecruiters postings response:
// { "content": [...], "totalFound": N, "offset": O, "limit": L }
type srPostingsResponse struct {
	Content    []srPosting `json:"content"`
	TotalFound int         `json:"totalFound"`
	Offset     int         `json:"offset"`
	Limit      int         `json:"limit"`
}

type srPosting struct {
	ID           string     `json:"id"`
	UUID         string     `json:"uuid"`
	Name         string     `json:"name"`
	ReleasedDate time.Time  `json:"releasedDate"`
	Location     srLocation `json:"location"`
}

type srLocation struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// SmartRecruitersAdapter fetches postings from the SmartRecruiters public API,
// following limit/offset pagination.
type SmartRecruitersAdapter struct {
	board       string
	companyName string
	client      *http.Client
}

// NewSmartRecruitersAdapter creates a new adapter for a SmartRecruiters company.
func NewSmartRecruitersAdapter(board string, companyName string, client *http.Client) *SmartRecruitersAdapter {
	return &SmartRecruitersAdapter{
		board:       board,
		companyName: companyName,
		client:      client,
	}
}

// FetchPostings pages through all postings for the company and normalizes
// them into the unified Posting model.
func (a *SmartRecruitersAdapter) FetchPostings(ctx context.Context) ([]model.Posting, error) {
	base := fmt.Sprintf("%s/%s/postings", smartRecruitersBaseURL, url.PathEscape(a.board))

	var postings []model.Posting
	offset := 0

	for {
		pageURL := fmt.Sprintf("%s?limit=%d&offset=%d", base, smartRecruitersPageLimit, offset)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("smartrecruiters fetch for %s: %w", a.board, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("smartrecruiters fetch for %s: %w", a.board, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("smartrecruiters fetch for %s: unexpected status %d", a.board, resp.StatusCode)
		}

		var page srPostingsResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("smartrecruiters fetch for %s: %w", a.board, err)
		}

		if len(page.Content) == 0 {
			break
		}

		for _, sp := range page.Content {
			title := strings.TrimSpace(sp.Name)
			id := strings.TrimSpace(firstNonEmpty(sp.ID, sp.UUID))
			if title == "" || id == "" {
				continue
			}

			var postedAt *time.Time
			if !sp.ReleasedDate.IsZero() {
				released := sp.ReleasedDate
				postedAt = &released
			}

			postings = append(postings, model.Posting{
				ID:       fmt.Sprintf("smartrecruiters:%s:%s", a.board, id),
				Company:  a.companyName,
				Title:    title,
				Location: joinNonEmpty(", ", sp.Location.City, sp.Location.Region, sp.Location.Country),
				URL:      fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", a.board, id),
				PostedAt: postedAt,
				Source:   "smartrecruiters",
			})
		}

		offset += smartRecruitersPageLimit
		if page.TotalFound > 0 && offset >= page.TotalFound {
			break
		}
		if offset > smartRecruitersMaxOffset {
			break
		}
	}

	return postings, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, vals ...string) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
