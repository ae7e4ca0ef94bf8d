package markettier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultSearchBaseURL      = "https://api.search.brave.com/res/v1"
	DefaultRateLimitPerMinute = 30
)

type SearchConfig struct {
	APIKey             string
	BaseURL            string
	RateLimitPerMinute int
	HTTPClient         *http.Client
}

// HTTPSearcher queries a web search API, rate limited client-side so batch
// evaluations stay inside the provider's quota.
type HTTPSearcher struct {
	cfg     SearchConfig
	limiter *rate.Limiter
}

func NewHTTPSearcher(cfg SearchConfig) (*HTTPSearcher, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("search API key not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSearchBaseURL
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = DefaultRateLimitPerMinute
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	return &HTTPSearcher{cfg: cfg, limiter: rate.NewLimiter(limit, 1)}, nil
}

// NewHTTPSearcherFromEnv builds a searcher from PATENTGRADE_SEARCH_API_KEY
// and, optionally, PATENTGRADE_SEARCH_API_URL.
func NewHTTPSearcherFromEnv() (*HTTPSearcher, error) {
	return NewHTTPSearcher(SearchConfig{
		APIKey:  os.Getenv("PATENTGRADE_SEARCH_API_KEY"),
		BaseURL: strings.TrimSpace(os.Getenv("PATENTGRADE_SEARCH_API_URL")),
	})
}

type searchAPIResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"results"`
	} `json:"web"`
}

func (s *HTTPSearcher) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("empty search query")
	}
	if maxResults <= 0 {
		maxResults = 3
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		results, retryAfter, err := s.searchOnce(ctx, query, maxResults)
		if err == nil {
			return results, nil
		}
		lastErr = err
		var re retryableError
		if !errors.As(err, &re) || attempt == 3 {
			return nil, err
		}
		sleep := retryAfter
		if sleep <= 0 {
			sleep = time.Duration(attempt) * time.Second
		}
		if err := sleepCtx(ctx, sleep); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

func (s *HTTPSearcher) searchOnce(ctx context.Context, query string, maxResults int) ([]Result, time.Duration, error) {
	u := strings.TrimRight(s.cfg.BaseURL, "/") + "/web/search?" + url.Values{
		"q":     {query},
		"count": {strconv.Itoa(maxResults)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.cfg.APIKey)

	res, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, retryableError{err}
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))

	retryAfter := parseRetryAfter(res.Header.Get("Retry-After"))
	if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
		return nil, retryAfter, retryableError{fmt.Errorf("status code: %d", res.StatusCode)}
	}
	if res.StatusCode >= 400 {
		return nil, retryAfter, fmt.Errorf("status code: %d body=%s", res.StatusCode, string(b))
	}

	var parsed searchAPIResponse
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]Result, 0, maxResults)
	for _, r := range parsed.Web.Results {
		out = append(out, Result{Title: r.Title, Body: r.Description, URL: r.URL})
		if len(out) == maxResults {
			break
		}
	}
	return out, 0, nil
}

func parseRetryAfter(v string) time.Duration {
	if strings.TrimSpace(v) == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err == nil {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
