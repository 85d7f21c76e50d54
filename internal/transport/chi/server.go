package chi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pawmatch/pawmatch/internal/domain"
	healthuc "github.com/pawmatch/pawmatch/internal/usecase/health"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest         = "bad_request"
	codeInvalidPreferences = "invalid_preferences"
	codeDogNotFound        = "dog_not_found"
	codeRateLimited        = "rate_limited"
	codeFeedUnavailable    = "feed_unavailable"
	codeUnauthorized       = "unauthorized"
	codeInternalError      = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API: the matching endpoint plus thin feed
// passthroughs with short-TTL response caching.
type Server struct {
	matcher       Matcher
	feed          Feed
	enrichment    Enrichment
	cache         KVStore
	health        *healthuc.Service
	searchTTL     time.Duration
	detailTTL     time.Duration
	limiter       *rate.Limiter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(matcher Matcher, feed Feed, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		matcher:   matcher,
		feed:      feed,
		health:    health,
		searchTTL: 120 * time.Second,
		detailTTL: 300 * time.Second,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidPreferences, http.StatusBadRequest, codeInvalidPreferences),
		sentinelHandler(domain.ErrDogNotFound, http.StatusNotFound, codeDogNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrFeedUnavailable, http.StatusBadGateway, codeFeedUnavailable),
	}
	return s
}

// WithCache attaches a key-value response cache for the feed passthroughs.
func (s *Server) WithCache(store KVStore, searchTTL, detailTTL time.Duration) *Server {
	s.cache = store
	if searchTTL > 0 {
		s.searchTTL = searchTTL
	}
	if detailTTL > 0 {
		s.detailTTL = detailTTL
	}
	return s
}

// WithEnrichment attaches the background facts worker.
func (s *Server) WithEnrichment(e Enrichment) *Server {
	s.enrichment = e
	return s
}

// WithSearchRateLimit caps /api/dogs searches per minute across all callers.
func (s *Server) WithSearchRateLimit(perMinute int) *Server {
	if perMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/match", s.MatchDogs)
	r.Get("/api/dogs", s.SearchDogs)
	r.Get("/api/dogs/{id}", s.GetDog)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// MatchDogs handles POST /api/match.
func (s *Server) MatchDogs(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.matcher.Match(r.Context(), req.toDomain())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matchResultsToDTO(results))
}

// SearchDogs handles GET /api/dogs: a cached, rate-limited feed search.
func (s *Server) SearchDogs(w http.ResponseWriter, r *http.Request) {
	q, err := feedQueryFromParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	key := searchCacheKey(q)
	if body, ok := s.fromCache(r.Context(), key); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	if s.limiter != nil && !s.limiter.Allow() {
		s.handleDomainError(w, domain.ErrRateLimited)
		return
	}

	dogs, err := s.feed.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if s.enrichment != nil {
		s.enrichment.Submit(dogs)
	}

	items := make([]dogDTO, len(dogs))
	for i, d := range dogs {
		items[i] = dogToDTO(d)
	}
	resp := dogListResponse{Items: items, Total: len(items)}

	s.toCache(r.Context(), key, resp, s.searchTTL)
	writeJSON(w, http.StatusOK, resp)
}

// GetDog handles GET /api/dogs/{id}: a cached feed detail lookup with
// derived facts attached when the background worker has them.
func (s *Server) GetDog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "dog id is required")
		return
	}

	key := domain.KeyPrefix + "detail:" + id
	if body, ok := s.fromCache(r.Context(), key); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	dog, err := s.feed.Dog(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if s.enrichment != nil && dog.Facts == nil {
		if facts, ok := s.enrichment.Facts(r.Context(), id); ok {
			dog.Facts = facts
		} else {
			s.enrichment.Submit([]domain.Dog{dog})
		}
	}

	resp := dogToDTO(dog)
	s.toCache(r.Context(), key, resp, s.detailTTL)
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	body, err := s.cache.Get(ctx, key)
	if err != nil || len(body) == 0 {
		return nil, false
	}
	return body, true
}

func (s *Server) toCache(ctx context.Context, key string, v any, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, body, ttl); err != nil {
		s.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}

// feedQueryFromParams parses /api/dogs query parameters. List parameters
// are comma separated.
func feedQueryFromParams(r *http.Request) (domain.FeedQuery, error) {
	q := domain.FeedQuery{
		ZipCodes:      splitParam(r.URL.Query().Get("zip")),
		Ages:          splitParam(r.URL.Query().Get("age")),
		Sizes:         splitParam(r.URL.Query().Get("size")),
		Breeds:        splitParam(r.URL.Query().Get("breed")),
		BreedsExclude: splitParam(r.URL.Query().Get("breedExclude")),
		Sort:          r.URL.Query().Get("sort"),
	}

	if v := r.URL.Query().Get("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius < 0 {
			return domain.FeedQuery{}, fmt.Errorf("radius must be a non-negative number")
		}
		q.RadiusMi = radius
	}
	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return domain.FeedQuery{}, fmt.Errorf("page must be a positive integer")
		}
		q.Page = page
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return domain.FeedQuery{}, fmt.Errorf("limit must be a positive integer")
		}
		q.PageSize = limit
	}

	return q, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// searchCacheKey hashes the canonical query so equivalent searches share
// one cache entry.
func searchCacheKey(q domain.FeedQuery) string {
	canonical := fmt.Sprintf("%s|%g|%s|%s|%s|%s|%s|%d|%d",
		strings.Join(q.ZipCodes, ","), q.RadiusMi,
		strings.Join(q.Ages, ","), strings.Join(q.Sizes, ","),
		strings.Join(q.Breeds, ","), strings.Join(q.BreedsExclude, ","),
		q.Sort, q.Page, q.PageSize,
	)
	sum := sha256.Sum256([]byte(canonical))
	return domain.KeyPrefix + "search:" + hex.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidPreferences,
		domain.ErrDogNotFound,
		domain.ErrRateLimited,
		domain.ErrFeedUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
