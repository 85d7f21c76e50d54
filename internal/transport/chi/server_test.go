package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pawmatch/pawmatch/internal/domain"
	healthuc "github.com/pawmatch/pawmatch/internal/usecase/health"
)

// --- Fakes ---

type fakeMatcher struct {
	res       domain.MatchingResults
	err       error
	lastPrefs domain.UserPreferences
}

func (f *fakeMatcher) Match(_ context.Context, prefs domain.UserPreferences) (domain.MatchingResults, error) {
	f.lastPrefs = prefs
	return f.res, f.err
}

type fakeFeed struct {
	dogs        []domain.Dog
	dog         domain.Dog
	searchErr   error
	dogErr      error
	searchCalls int
	dogCalls    int
}

func (f *fakeFeed) Search(_ context.Context, _ domain.FeedQuery) ([]domain.Dog, error) {
	f.searchCalls++
	return f.dogs, f.searchErr
}

func (f *fakeFeed) Dog(_ context.Context, _ string) (domain.Dog, error) {
	f.dogCalls++
	return f.dog, f.dogErr
}

type fakeEnrichment struct {
	facts     map[string]*domain.DerivedFacts
	submitted [][]domain.Dog
}

func (f *fakeEnrichment) Facts(_ context.Context, dogID string) (*domain.DerivedFacts, bool) {
	facts, ok := f.facts[dogID]
	return facts, ok
}

func (f *fakeEnrichment) Submit(dogs []domain.Dog) {
	f.submitted = append(f.submitted, dogs)
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *memCache) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func newRouter(s *Server) http.Handler {
	r := chirouter.NewRouter()
	s.Register(r)
	return r
}

// --- Tests ---

func TestMatchDogs_Success(t *testing.T) {
	matcher := &fakeMatcher{
		res: domain.MatchingResults{
			TopMatches: []domain.DogAnalysis{{
				Dog:          domain.Dog{ID: "d1", Name: "Rex"},
				Score:        120,
				MatchedPrefs: []string{"age"},
				Reasons:      domain.AIReasoning{Primary: "Rex fits your home."},
			}},
			AllMatches: []domain.DogAnalysis{{
				Dog:   domain.Dog{ID: "d1", Name: "Rex"},
				Score: 120,
			}},
			ExpansionNotes: []string{"doodle matched 2 breeds"},
		},
	}
	handler := newRouter(NewServer(matcher, &fakeFeed{}, healthuc.New(nil, nil), zap.NewNop()))

	body := []byte(`{"zipCodes": ["08401"], "radiusMi": 50, "age": ["young", "adult"], "guidance": "calm dog please"}`)
	req := httptest.NewRequest("POST", "/api/match", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp matchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.TopMatches) != 1 || resp.TopMatches[0].DogID != "d1" {
		t.Errorf("topMatches = %+v", resp.TopMatches)
	}
	if resp.TopMatches[0].Reasons == nil || resp.TopMatches[0].Reasons.Primary == "" {
		t.Error("top match missing reasons")
	}
	if resp.AllMatches[0].Reasons != nil {
		t.Error("unexplained match must omit reasons")
	}
	if len(resp.ExpansionNotes) != 1 {
		t.Errorf("expansionNotes = %v", resp.ExpansionNotes)
	}

	if len(matcher.lastPrefs.Ages) != 2 || matcher.lastPrefs.Ages[0] != "young" {
		t.Errorf("ages = %v", matcher.lastPrefs.Ages)
	}
	if matcher.lastPrefs.Guidance != "calm dog please" {
		t.Errorf("guidance = %q", matcher.lastPrefs.Guidance)
	}
}

func TestMatchDogs_InvalidBody(t *testing.T) {
	handler := newRouter(NewServer(&fakeMatcher{}, &fakeFeed{}, healthuc.New(nil, nil), zap.NewNop()))

	req := httptest.NewRequest("POST", "/api/match", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestMatchDogs_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid preferences", domain.ErrInvalidPreferences, http.StatusBadRequest, codeInvalidPreferences},
		{"feed down", domain.ErrFeedUnavailable, http.StatusBadGateway, codeFeedUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newRouter(NewServer(&fakeMatcher{err: tt.err}, &fakeFeed{}, healthuc.New(nil, nil), zap.NewNop()))

			req := httptest.NewRequest("POST", "/api/match", bytes.NewReader([]byte(`{"zipCodes": [], "radiusMi": 0}`)))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var errResp errorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if errResp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", errResp.Code, tt.wantCode)
			}
		})
	}
}

func TestSearchDogs_SecondCallServedFromCache(t *testing.T) {
	feed := &fakeFeed{dogs: []domain.Dog{{ID: "d1", Name: "Buddy"}}}
	s := NewServer(&fakeMatcher{}, feed, healthuc.New(nil, nil), zap.NewNop()).
		WithCache(newMemCache(), 0, 0)
	handler := newRouter(s)

	for range 2 {
		req := httptest.NewRequest("GET", "/api/dogs?zip=08401&radius=50", http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
		var resp dogListResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Total != 1 || resp.Items[0].ID != "d1" {
			t.Errorf("resp = %+v", resp)
		}
	}

	if feed.searchCalls != 1 {
		t.Errorf("feed hit %d times, want 1 (cached)", feed.searchCalls)
	}
}

func TestSearchDogs_RateLimited(t *testing.T) {
	feed := &fakeFeed{}
	s := NewServer(&fakeMatcher{}, feed, healthuc.New(nil, nil), zap.NewNop()).
		WithSearchRateLimit(1)
	handler := newRouter(s)

	// No cache attached: both requests reach the limiter.
	req := httptest.NewRequest("GET", "/api/dogs?zip=08401", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/api/dogs?zip=19103", http.NoBody)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != codeRateLimited {
		t.Errorf("code = %q, want %q", errResp.Code, codeRateLimited)
	}
}

func TestSearchDogs_SubmitsForEnrichment(t *testing.T) {
	feed := &fakeFeed{dogs: []domain.Dog{{ID: "d1"}, {ID: "d2"}}}
	enrichment := &fakeEnrichment{facts: map[string]*domain.DerivedFacts{}}
	s := NewServer(&fakeMatcher{}, feed, healthuc.New(nil, nil), zap.NewNop()).
		WithEnrichment(enrichment)
	handler := newRouter(s)

	req := httptest.NewRequest("GET", "/api/dogs", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if len(enrichment.submitted) != 1 || len(enrichment.submitted[0]) != 2 {
		t.Errorf("submitted = %+v", enrichment.submitted)
	}
}

func TestSearchDogs_BadRadius(t *testing.T) {
	handler := newRouter(NewServer(&fakeMatcher{}, &fakeFeed{}, healthuc.New(nil, nil), zap.NewNop()))

	req := httptest.NewRequest("GET", "/api/dogs?radius=abc", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestGetDog_AttachesCachedFacts(t *testing.T) {
	feed := &fakeFeed{dog: domain.Dog{ID: "d1", Name: "Luna"}}
	enrichment := &fakeEnrichment{facts: map[string]*domain.DerivedFacts{
		"d1": {Barky: true, ShedLevel: domain.LevelHigh},
	}}
	s := NewServer(&fakeMatcher{}, feed, healthuc.New(nil, nil), zap.NewNop()).
		WithEnrichment(enrichment)
	handler := newRouter(s)

	req := httptest.NewRequest("GET", "/api/dogs/d1", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp dogDTO
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Facts == nil || !resp.Facts.Barky {
		t.Errorf("facts = %+v, want cached derived facts", resp.Facts)
	}
}

func TestGetDog_MissSubmitsForEnrichment(t *testing.T) {
	feed := &fakeFeed{dog: domain.Dog{ID: "d9"}}
	enrichment := &fakeEnrichment{facts: map[string]*domain.DerivedFacts{}}
	s := NewServer(&fakeMatcher{}, feed, healthuc.New(nil, nil), zap.NewNop()).
		WithEnrichment(enrichment)
	handler := newRouter(s)

	req := httptest.NewRequest("GET", "/api/dogs/d9", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if len(enrichment.submitted) != 1 {
		t.Errorf("submitted = %+v, want one submission on facts miss", enrichment.submitted)
	}
}

func TestGetDog_NotFound(t *testing.T) {
	feed := &fakeFeed{dogErr: domain.ErrDogNotFound}
	handler := newRouter(NewServer(&fakeMatcher{}, feed, healthuc.New(nil, nil), zap.NewNop()))

	req := httptest.NewRequest("GET", "/api/dogs/missing", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestGetDog_SecondCallServedFromCache(t *testing.T) {
	feed := &fakeFeed{dog: domain.Dog{ID: "d1", Name: "Luna"}}
	s := NewServer(&fakeMatcher{}, feed, healthuc.New(nil, nil), zap.NewNop()).
		WithCache(newMemCache(), 0, 0)
	handler := newRouter(s)

	for range 2 {
		req := httptest.NewRequest("GET", "/api/dogs/d1", http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
	}

	if feed.dogCalls != 1 {
		t.Errorf("feed hit %d times, want 1 (cached)", feed.dogCalls)
	}
}

func TestHealthz(t *testing.T) {
	handler := newRouter(NewServer(&fakeMatcher{}, &fakeFeed{}, healthuc.New(nil, nil), zap.NewNop()))

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != string(healthuc.Healthy) {
		t.Errorf("status = %q, want %q", resp.Status, healthuc.Healthy)
	}
}
