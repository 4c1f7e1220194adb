package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// redirectClient returns a client that rewrites every request to hit srv,
// so adapters with hardcoded base URLs can be exercised against httptest.
func redirectClient(srv *httptest.Server) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.URL.Scheme = "http"
			req.URL.Host = srv.Listener.Addr().String()
			return http.DefaultTransport.RoundTrip(req)
		}),
	}
}

func TestGreenhouseFetchPostings_Success(t *testing.T) {
	payload := `{
		"jobs": [
			{
				"id": 12345,
				"title": "Data Analyst",
				"location": {"name": "San Francisco, CA"},
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/12345",
				"updated_at": "2026-02-13T10:00:00Z"
			},
			{
				"id": 67890,
				"title": "Business Analyst",
				"location": {"name": "Remote - US"},
				"absolute_url": "https://boards.greenhouse.io/acme/jobs/67890",
				"updated_at": "2026-02-13T11:30:00Z"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewGreenhouseAdapter("acme", "Acme Corp", redirectClient(srv))

	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	p := postings[0]
	if p.ID != "greenhouse:acme:12345" {
		t.Errorf("ID = %s, want greenhouse:acme:12345", p.ID)
	}
	if p.Company != "Acme Corp" {
		t.Errorf("Company = %s, want Acme Corp", p.Company)
	}
	if p.Title != "Data Analyst" {
		t.Errorf("Title = %s, want Data Analyst", p.Title)
	}
	if p.Location != "San Francisco, CA" {
		t.Errorf("Location = %s", p.Location)
	}
	if p.Source != "greenhouse" {
		t.Errorf("Source = %s, want greenhouse", p.Source)
	}
	if p.PostedAt == nil || p.PostedAt.Day() != 13 {
		t.Errorf("PostedAt = %v, want Feb 13", p.PostedAt)
	}
}

func TestGreenhouseFetchPostings_EmptyBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": []}`))
	}))
	defer srv.Close()

	a := NewGreenhouseAdapter("empty-co", "Empty Co", redirectClient(srv))

	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 0 {
		t.Fatalf("expected 0 postings, got %d", len(postings))
	}
}

func TestGreenhouseFetchPostings_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewGreenhouseAdapter("fail-co", "Fail Co", redirectClient(srv))

	if _, err := a.FetchPostings(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
}

func TestGreenhouseFetchPostings_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not valid json`))
	}))
	defer srv.Close()

	a := NewGreenhouseAdapter("bad-co", "Bad Co", redirectClient(srv))

	if _, err := a.FetchPostings(context.Background()); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}
