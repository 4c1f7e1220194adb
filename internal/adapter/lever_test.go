package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLeverFetchPostings_Success(t *testing.T) {
	payload := `[
		{
			"id": "abc-123",
			"text": "Product Analyst",
			"categories": {
				"location": "New York, NY",
				"allLocations": ["New York, NY", "Remote - US"]
			},
			"createdAt": 1767225600000,
			"hostedUrl": "https://jobs.lever.co/acme/abc-123"
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewLeverAdapter("acme", "Acme Corp", redirectClient(srv))

	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}

	p := postings[0]
	if p.ID != "lever:acme:abc-123" {
		t.Errorf("ID = %s, want lever:acme:abc-123", p.ID)
	}
	if p.Title != "Product Analyst" {
		t.Errorf("Title = %s", p.Title)
	}
	// allLocations wins over the single location field.
	if p.Location != "New York, NY, Remote - US" {
		t.Errorf("Location = %s", p.Location)
	}
	if p.URL != "https://jobs.lever.co/acme/abc-123" {
		t.Errorf("URL = %s", p.URL)
	}
	if p.Source != "lever" {
		t.Errorf("Source = %s, want lever", p.Source)
	}
	if p.PostedAt == nil {
		t.Fatal("expected PostedAt from createdAt millis")
	}
}

func TestLeverFetchPostings_FallbackLocation(t *testing.T) {
	payload := `[
		{
			"id": "x",
			"text": "Analyst",
			"categories": {"location": "Austin, TX"},
			"hostedUrl": "https://jobs.lever.co/acme/x"
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewLeverAdapter("acme", "Acme Corp", redirectClient(srv))

	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if postings[0].Location != "Austin, TX" {
		t.Errorf("Location = %s, want Austin, TX", postings[0].Location)
	}
	if postings[0].PostedAt != nil {
		t.Error("expected nil PostedAt when createdAt is absent")
	}
}

func TestLeverFetchPostings_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := NewLeverAdapter("gone-co", "Gone Co", redirectClient(srv))

	if _, err := a.FetchPostings(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 404, got nil")
	}
}
