package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sakif/news-channel/internal/apperror"
	"github.com/sakif/news-channel/internal/cache"
)

// fakeNewsClient counts upstream calls and returns canned payloads.
type fakeNewsClient struct {
	mu              sync.Mutex
	headlineCalls   int
	searchCalls     int
	headlinePayload json.RawMessage
	searchPayload   json.RawMessage
	err             error
}

func (f *fakeNewsClient) TopHeadlines(ctx context.Context, category string, page int) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headlineCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.headlinePayload, nil
}

func (f *fakeNewsClient) Everything(ctx context.Context, query string, page int) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.searchPayload, nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestNewsService(t *testing.T) (*NewsService, *fakeNewsClient, *testClock) {
	t.Helper()
	client := &fakeNewsClient{
		headlinePayload: json.RawMessage(`{"status":"ok","source":"headlines"}`),
		searchPayload:   json.RawMessage(`{"status":"ok","source":"search"}`),
	}
	clock := &testClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewNewsService(client, cache.NewWithClock(10*time.Minute, clock.Now), testLogger())
	return svc, client, clock
}

func TestGetNews_CacheHitSkipsUpstream(t *testing.T) {
	svc, client, _ := newTestNewsService(t)
	ctx := context.Background()

	if _, err := svc.GetNews(ctx, "general", "", 1); err != nil {
		t.Fatalf("GetNews() error = %v", err)
	}
	if _, err := svc.GetNews(ctx, "general", "", 1); err != nil {
		t.Fatalf("GetNews() error = %v", err)
	}

	// Two identical requests inside the TTL: exactly one upstream call.
	if client.headlineCalls != 1 {
		t.Errorf("upstream calls = %d, want 1", client.headlineCalls)
	}
}

func TestGetNews_CacheExpiresAfterTTL(t *testing.T) {
	svc, client, clock := newTestNewsService(t)
	ctx := context.Background()

	svc.GetNews(ctx, "general", "", 1)
	svc.GetNews(ctx, "general", "", 1)
	clock.Advance(11 * time.Minute)
	svc.GetNews(ctx, "general", "", 1)

	if client.headlineCalls != 2 {
		t.Errorf("upstream calls = %d, want 2 (one before, one after expiry)", client.headlineCalls)
	}
}

func TestGetNews_SearchUsesEverythingEndpoint(t *testing.T) {
	svc, client, _ := newTestNewsService(t)

	payload, err := svc.GetNews(context.Background(), "", "bitcoin", 1)
	if err != nil {
		t.Fatalf("GetNews() error = %v", err)
	}
	if client.searchCalls != 1 || client.headlineCalls != 0 {
		t.Errorf("calls = %d search / %d headlines, want 1 / 0",
			client.searchCalls, client.headlineCalls)
	}
	if string(payload) != `{"status":"ok","source":"search"}` {
		t.Errorf("payload = %s, want the search payload", payload)
	}
}

func TestGetNews_SearchAndCategoryKeysDisjoint(t *testing.T) {
	svc, _, _ := newTestNewsService(t)
	ctx := context.Background()

	search, _ := svc.GetNews(ctx, "", "bitcoin", 1)
	headlines, _ := svc.GetNews(ctx, "general", "", 1)

	// The cached search payload must never answer a category query.
	if string(search) == string(headlines) {
		t.Error("search and category queries returned each other's payload")
	}
}

func TestGetNews_DefaultCategorySharesCacheEntry(t *testing.T) {
	svc, client, _ := newTestNewsService(t)
	ctx := context.Background()

	svc.GetNews(ctx, "", "", 1)
	svc.GetNews(ctx, "general", "", 1)

	// "" is normalized to "general" before the key is derived.
	if client.headlineCalls != 1 {
		t.Errorf("upstream calls = %d, want 1 (shared cache entry)", client.headlineCalls)
	}
}

func TestGetNews_PagesCachedSeparately(t *testing.T) {
	svc, client, _ := newTestNewsService(t)
	ctx := context.Background()

	svc.GetNews(ctx, "general", "", 1)
	svc.GetNews(ctx, "general", "", 2)

	if client.headlineCalls != 2 {
		t.Errorf("upstream calls = %d, want 2 (distinct pages)", client.headlineCalls)
	}
}

func TestGetNews_UpstreamErrorNotCached(t *testing.T) {
	svc, client, _ := newTestNewsService(t)
	ctx := context.Background()

	client.err = apperror.Upstream("Your API key is invalid")
	_, err := svc.GetNews(ctx, "general", "", 1)
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Fatalf("GetNews() error = %v, want ErrUpstream", err)
	}

	// The failure was not cached: the next call hits upstream again.
	client.err = nil
	if _, err := svc.GetNews(ctx, "general", "", 1); err != nil {
		t.Fatalf("GetNews() after recovery error = %v", err)
	}
	if client.headlineCalls != 2 {
		t.Errorf("upstream calls = %d, want 2", client.headlineCalls)
	}
}

func TestGetNews_TransportErrorSurfaced(t *testing.T) {
	svc, client, _ := newTestNewsService(t)
	client.err = errors.New("dial tcp: connection refused")

	_, err := svc.GetNews(context.Background(), "general", "", 1)
	if err == nil {
		t.Fatal("GetNews() should surface a transport failure")
	}
	if errors.Is(err, apperror.ErrUpstream) {
		t.Error("a transport failure must not classify as an upstream application error")
	}
}

func TestGetNews_PageDefaultsToOne(t *testing.T) {
	svc, client, _ := newTestNewsService(t)
	ctx := context.Background()

	svc.GetNews(ctx, "general", "", 0)
	svc.GetNews(ctx, "general", "", 1)

	if client.headlineCalls != 1 {
		t.Errorf("upstream calls = %d, want 1 (page 0 normalizes to 1)", client.headlineCalls)
	}
}
