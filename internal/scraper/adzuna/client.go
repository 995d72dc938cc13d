// Paginated JSON API adapter. No rendering involved: plain HTTP against
// the Adzuna search endpoint, paced well below the API quota, with the
// category exclusion filter applied before anything reaches the
// normalizer.

package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/config"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/filter"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/scraper"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

// maxRetries bounds per-page retries. Exhausting it stops pagination
// but keeps everything gathered so far.
const maxRetries = 3

var _ scraper.Source = (*Client)(nil)

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	matcher    *filter.Matcher
	sleep      func(time.Duration)
}

func New(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		// ~1 req/s keeps a full run far below the API quota
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		matcher: filter.NewMatcher(cfg.Adzuna.ExcludeKeywords...),
		sleep:   time.Sleep,
	}
}

func (c *Client) Name() string {
	return "Adzuna"
}

type searchResponse struct {
	Results []apiJob `json:"results"`
	Count   int      `json:"count"`
}

type apiJob struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	RedirectURL  string  `json:"redirect_url"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	ContractType string  `json:"contract_type"`
	ContractTime string  `json:"contract_time"`
	Company      struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Category struct {
		Label string `json:"label"`
		Tag   string `json:"tag"`
	} `json:"category"`
}

// Scrape walks the result pages until a short page, the configured
// max_results, or an exhausted retry budget. In the last case the
// pages collected so far are returned together with the error.
func (c *Client) Scrape(ctx context.Context) ([]*models.RawExtraction, error) {
	log.Printf("📋 Querying Adzuna (%s) for %q...", c.cfg.Adzuna.Country, strings.Join(c.cfg.Adzuna.Keywords, " "))

	var results []*models.RawExtraction
	dropped := 0
	for page := 1; ; page++ {
		resp, err := c.fetchPage(ctx, page)
		if err != nil {
			log.Printf("⚠️ Stopping pagination at page %d, keeping %d postings: %v", page, len(results), err)
			return results, fmt.Errorf("adzuna scrape: %w", err)
		}

		for _, job := range resp.Results {
			if keyword, excluded := c.exclude(job); excluded {
				dropped++
				log.Printf("  🚫 Excluded (%s): %s", keyword, job.Title)
				continue
			}
			results = append(results, mapJob(job))
			if c.cfg.Adzuna.MaxResults > 0 && len(results) >= c.cfg.Adzuna.MaxResults {
				log.Printf("🧮 Reached max_results (%d) - stopping", c.cfg.Adzuna.MaxResults)
				return results, nil
			}
		}
		log.Printf("  📊 Page %d: %d postings, kept %d so far (site total %d)", page, len(resp.Results), len(results), resp.Count)

		if len(resp.Results) < c.cfg.Adzuna.ResultsPerPage {
			log.Printf("✅ Adzuna finished: %d kept, %d excluded", len(results), dropped)
			return results, nil
		}
	}
}

// exclude applies the keyword filter over title and category; matching
// the description too is a config extension, off by default.
func (c *Client) exclude(job apiJob) (string, bool) {
	texts := []string{job.Title, job.Category.Label}
	if c.cfg.Adzuna.MatchDescription {
		texts = append(texts, job.Description)
	}
	return c.matcher.Match(texts...)
}

func (c *Client) fetchPage(ctx context.Context, page int) (*searchResponse, error) {
	var lastErr error
	backoff := time.Second
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("  🔁 Retry %d/%d for page %d in %s", attempt, maxRetries, page, backoff)
			c.sleep(backoff)
			backoff *= 2
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.doRequest(ctx, page)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("page %d after %d retries: %w", page, maxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, page int) (*searchResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", c.baseURL, c.cfg.Adzuna.Country, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("app_id", c.cfg.Adzuna.AppID)
	q.Set("app_key", c.cfg.Adzuna.AppKey)
	q.Set("results_per_page", strconv.Itoa(c.cfg.Adzuna.ResultsPerPage))
	if len(c.cfg.Adzuna.Keywords) > 0 {
		q.Set("what", strings.Join(c.cfg.Adzuna.Keywords, " "))
	}
	if c.cfg.Adzuna.Location != "" {
		q.Set("where", c.cfg.Adzuna.Location)
	}
	q.Set("content-type", "application/json")
	req.URL.RawQuery = q.Encode()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", httpResp.StatusCode)
	}

	var resp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}
	return &resp, nil
}

// mapJob translates API field names 1:1 into the shared extraction
// vocabulary, so the normalizer never needs to know the provenance.
func mapJob(job apiJob) *models.RawExtraction {
	raw := models.NewRawExtraction(models.SourceAdzuna, job.RedirectURL)
	raw.Set(models.FieldID, job.ID)
	raw.Set(models.FieldTitle, job.Title)
	raw.Set(models.FieldCompany, job.Company.DisplayName)
	raw.Set(models.FieldLocation, job.Location.DisplayName)
	raw.Set(models.FieldSalary, formatSalary(job.SalaryMin, job.SalaryMax))
	raw.Set(models.FieldWorkTime, strings.ReplaceAll(job.ContractTime, "_", " "))
	raw.Set(models.FieldContractType, strings.ReplaceAll(job.ContractType, "_", " "))
	raw.Set(models.FieldDescription, job.Description)
	return raw
}

// formatSalary keeps the API's numeric range as free text. Salary stays
// source-dependent on purpose; the schema does not unify currencies or
// pay periods.
func formatSalary(min, max float64) string {
	switch {
	case min > 0 && max > 0 && min != max:
		return fmt.Sprintf("%.0f - %.0f", min, max)
	case max > 0:
		return fmt.Sprintf("%.0f", max)
	case min > 0:
		return fmt.Sprintf("%.0f", min)
	default:
		return ""
	}
}
