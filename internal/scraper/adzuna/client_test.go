package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/config"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Adzuna.AppID = "test-id"
	cfg.Adzuna.AppKey = "test-key"
	cfg.Adzuna.Country = "gb"
	cfg.Adzuna.Keywords = []string{"engineer"}
	cfg.Adzuna.ResultsPerPage = 3
	return cfg
}

func newTestClient(cfg *config.Config, baseURL string) *Client {
	c := New(cfg)
	c.baseURL = baseURL
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	c.sleep = func(time.Duration) {}
	return c
}

func posting(id, title, category string) map[string]any {
	return map[string]any{
		"id":           id,
		"title":        title,
		"description":  "Some description.",
		"redirect_url": "https://adzuna.example/details/" + id,
		"category":     map[string]any{"label": category, "tag": "it-jobs"},
		"company":      map[string]any{"display_name": "Acme Ltd"},
		"location":     map[string]any{"display_name": "London, UK"},
	}
}

func servePages(t *testing.T, pages map[int][]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("app_key"))

		var page int
		fmt.Sscanf(r.URL.Path, "/gb/search/%d", &page)
		results, ok := pages[page]
		if !ok {
			results = nil
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results, "count": 120})
	}))
}

func TestClient_PaginatesUntilShortPage(t *testing.T) {
	srv := servePages(t, map[int][]map[string]any{
		1: {
			posting("1", "Backend Engineer", "IT Jobs"),
			posting("2", "Data Engineer", "IT Jobs"),
			posting("3", "DevOps Engineer", "IT Jobs"),
		},
		2: {
			posting("4", "QA Engineer", "IT Jobs"),
		},
	})
	defer srv.Close()

	results, err := newTestClient(testConfig(), srv.URL).Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	first := results[0]
	assert.Equal(t, models.SourceAdzuna, first.Source)
	assert.Equal(t, "https://adzuna.example/details/1", first.URL)
	assert.Equal(t, "1", first.Get(models.FieldID))
	assert.Equal(t, "Backend Engineer", first.Get(models.FieldTitle))
	assert.Equal(t, "Acme Ltd", first.Get(models.FieldCompany))
	assert.Equal(t, "London, UK", first.Get(models.FieldLocation))
}

func TestClient_ExclusionFilter(t *testing.T) {
	srv := servePages(t, map[int][]map[string]any{
		1: {
			posting("1", "Warehouse Operative – Night Shift", "Logistics & Warehouse Jobs"),
			posting("2", "Backend Engineer", "IT Jobs"),
			posting("3", "Senior Courier Logistics Planner", "Logistics & Warehouse Jobs"),
		},
	})
	defer srv.Close()

	results, err := newTestClient(testConfig(), srv.URL).Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Backend Engineer", results[0].Get(models.FieldTitle))
}

func TestClient_MatchDescriptionExtension(t *testing.T) {
	page := map[int][]map[string]any{1: {
		posting("1", "General Operative", "Other Jobs"),
	}}
	page[1][0]["description"] = "Forklift experience required."

	srv := servePages(t, page)
	defer srv.Close()

	// conservative default: title+category only, the posting is kept
	cfg := testConfig()
	results, err := newTestClient(cfg, srv.URL).Scrape(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 1)

	// widened matching drops it on the description keyword
	cfg = testConfig()
	cfg.Adzuna.MatchDescription = true
	results, err = newTestClient(cfg, srv.URL).Scrape(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_MaxResults(t *testing.T) {
	srv := servePages(t, map[int][]map[string]any{
		1: {
			posting("1", "Backend Engineer", "IT Jobs"),
			posting("2", "Data Engineer", "IT Jobs"),
			posting("3", "DevOps Engineer", "IT Jobs"),
		},
		2: {
			posting("4", "QA Engineer", "IT Jobs"),
			posting("5", "SRE", "IT Jobs"),
			posting("6", "Platform Engineer", "IT Jobs"),
		},
	})
	defer srv.Close()

	cfg := testConfig()
	cfg.Adzuna.MaxResults = 2
	results, err := newTestClient(cfg, srv.URL).Scrape(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestClient_RetriesThenSucceeds(t *testing.T) {
	var failures int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failures < 2 {
			failures++
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{posting("1", "Backend Engineer", "IT Jobs")},
			"count":   1,
		})
	}))
	defer srv.Close()

	results, err := newTestClient(testConfig(), srv.URL).Scrape(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 2, failures)
}

func TestClient_ExhaustedRetriesKeepPartialResults(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var page int
		fmt.Sscanf(r.URL.Path, "/gb/search/%d", &page)
		if page > 1 {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				posting("1", "Backend Engineer", "IT Jobs"),
				posting("2", "Data Engineer", "IT Jobs"),
				posting("3", "DevOps Engineer", "IT Jobs"),
			},
			"count": 99,
		})
	}))
	defer srv.Close()

	results, err := newTestClient(testConfig(), srv.URL).Scrape(context.Background())
	assert.Error(t, err)
	// page 1 results survive the page 2 failure
	assert.Len(t, results, 3)
	// initial attempt plus maxRetries for page 2, on top of page 1
	assert.Equal(t, 1+maxRetries+1, calls)
}

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		min, max float64
		want     string
	}{
		{0, 0, ""},
		{30000, 45000, "30000 - 45000"},
		{30000, 30000, "30000"},
		{0, 52000, "52000"},
		{28000, 0, "28000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSalary(tt.min, tt.max))
	}
}
