// Package petfinder is the listing-feed client: OAuth2 client-credentials
// auth, paginated adoptable-dog search with a freshness cutoff and
// cross-post deduplication, and single-listing lookup. All upstream
// failures wrap domain.ErrFeedUnavailable.
package petfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/metrics"
)

const (
	defaultPageSize  = 100
	defaultMaxPages  = 3
	defaultFreshness = 24 * time.Hour
)

// Client talks to the Petfinder v2 API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	limiter      *rate.Limiter
	freshness    time.Duration
	pageSize     int
	maxPages     int
	logger       *zap.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// Config holds the feed client settings.
type Config struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	Timeout           time.Duration
	RequestsPerMinute int
	Freshness         time.Duration
	PageSize          int
	MaxPages          int
	Logger            *zap.Logger
}

// NewClient creates a Petfinder feed client.
func NewClient(cfg *Config) *Client {
	freshness := cfg.Freshness
	if freshness <= 0 {
		freshness = defaultFreshness
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute)
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		limiter:      limiter,
		freshness:    freshness,
		pageSize:     pageSize,
		maxPages:     maxPages,
		logger:       cfg.Logger,
	}
}

// Search implements match.Feed. Pages through adoptable dogs for the
// query, keeps only listings published within the freshness window, and
// drops cross-posted duplicates by fingerprint.
func (c *Client) Search(ctx context.Context, q domain.FeedQuery) ([]domain.Dog, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	cutoff := time.Now().Add(-c.freshness)

	var dogs []domain.Dog
	seen := make(map[string]bool)

	for page := 1; page <= c.maxPages; page++ {
		resp, err := c.searchPage(ctx, q, page)
		if err != nil {
			metrics.FeedRequestsTotal.WithLabelValues("search", "error").Inc()
			return nil, err
		}

		for _, a := range resp.Animals {
			if !a.PublishedAt.IsZero() && a.PublishedAt.Before(cutoff) {
				continue
			}
			if excludedBreed(a, q.BreedsExclude) {
				continue
			}
			fp := a.fingerprint()
			if seen[fp] {
				continue
			}
			seen[fp] = true
			dogs = append(dogs, a.toDomain())
		}

		if page >= resp.Pagination.TotalPages {
			break
		}
	}

	metrics.FeedRequestsTotal.WithLabelValues("search", "success").Inc()
	metrics.FeedRequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	metrics.FeedDogsFetched.Add(float64(len(dogs)))

	c.logger.Debug("feed search completed",
		zap.Int("dogs", len(dogs)),
		zap.Duration("took", time.Since(start)),
	)
	return dogs, nil
}

// Dog fetches a single listing by id.
func (c *Client) Dog(ctx context.Context, id string) (domain.Dog, error) {
	if err := c.wait(ctx); err != nil {
		return domain.Dog{}, err
	}

	body, status, err := c.get(ctx, "/v2/animals/"+url.PathEscape(id), nil)
	if err != nil {
		metrics.FeedRequestsTotal.WithLabelValues("dog", "error").Inc()
		return domain.Dog{}, err
	}
	if status == http.StatusNotFound {
		metrics.FeedRequestsTotal.WithLabelValues("dog", "not_found").Inc()
		return domain.Dog{}, fmt.Errorf("listing %s: %w", id, domain.ErrDogNotFound)
	}
	if status != http.StatusOK {
		metrics.FeedRequestsTotal.WithLabelValues("dog", "error").Inc()
		return domain.Dog{}, fmt.Errorf("feed returned %d: %w", status, domain.ErrFeedUnavailable)
	}

	var ar animalResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		metrics.FeedRequestsTotal.WithLabelValues("dog", "error").Inc()
		return domain.Dog{}, fmt.Errorf("decode listing: %w", domain.ErrFeedUnavailable)
	}

	metrics.FeedRequestsTotal.WithLabelValues("dog", "success").Inc()
	return ar.Animal.toDomain(), nil
}

func (c *Client) searchPage(ctx context.Context, q domain.FeedQuery, page int) (*animalsResponse, error) {
	sort := q.Sort
	if sort == "" {
		sort = "recent"
	}
	params := url.Values{
		"type":   {"dog"},
		"status": {"adoptable"},
		"sort":   {sort},
		"limit":  {strconv.Itoa(c.pageSize)},
		"page":   {strconv.Itoa(page)},
	}
	if len(q.ZipCodes) > 0 {
		params.Set("location", q.ZipCodes[0])
		if q.RadiusMi > 0 {
			params.Set("distance", strconv.Itoa(int(q.RadiusMi)))
		}
	}
	if len(q.Ages) > 0 {
		params.Set("age", strings.Join(q.Ages, ","))
	}
	if len(q.Sizes) > 0 {
		params.Set("size", strings.Join(q.Sizes, ","))
	}
	if len(q.Breeds) > 0 {
		params.Set("breed", strings.Join(q.Breeds, ","))
	}

	body, status, err := c.get(ctx, "/v2/animals", params)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("feed returned %d: %w", status, domain.ErrFeedUnavailable)
	}

	var resp animalsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search page: %w", domain.ErrFeedUnavailable)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, 0, err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("feed request: %w", domain.ErrFeedUnavailable)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, 0, fmt.Errorf("read feed response: %w", domain.ErrFeedUnavailable)
	}
	return body, resp.StatusCode, nil
}

// excludedBreed drops a listing whose breed names contain any excluded
// term, case-insensitive.
func excludedBreed(a animal, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	names := strings.ToLower(a.Breeds.Primary + " " + a.Breeds.Secondary)
	for _, term := range excluded {
		if term != "" && strings.Contains(names, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("feed rate limit: %w", err)
	}
	return nil
}
