package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sakif/news-channel/internal/cache"
)

// DefaultCategory is used when neither a category nor a search term is given.
const DefaultCategory = "general"

// NewsClient is the slice of the upstream news API this service needs.
// internal/newsapi.Client satisfies it; tests use a counting fake.
type NewsClient interface {
	TopHeadlines(ctx context.Context, category string, page int) (json.RawMessage, error)
	Everything(ctx context.Context, query string, page int) (json.RawMessage, error)
}

// NewsService is the caching proxy in front of the news upstream.
//
// Repeated queries inside the cache TTL are served from memory with zero
// upstream calls — which also means a cached response does not reflect
// upstream updates until its entry expires. Failed upstream calls are never
// cached.
type NewsService struct {
	client NewsClient
	cache  *cache.Cache
	logger *slog.Logger
}

func NewNewsService(client NewsClient, c *cache.Cache, logger *slog.Logger) *NewsService {
	return &NewsService{
		client: client,
		cache:  c,
		logger: logger,
	}
}

// GetNews resolves a news query, from cache when possible.
//
// Exactly one of category/search drives the upstream call: a non-empty search
// hits the "everything" endpoint sorted by publish date, otherwise the
// category (defaulted to "general") hits "top headlines". The default is
// applied before the cache key is derived, so an unfiltered request and an
// explicit category=general share an entry.
func (s *NewsService) GetNews(ctx context.Context, category, search string, page int) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if category == "" {
		category = DefaultCategory
	}

	key := fmt.Sprintf("news_%s_%s_%d", category, search, page)

	if payload, ok := s.cache.Get(key); ok {
		s.logger.Debug("serving news from cache", slog.String("key", key))
		return payload, nil
	}

	var (
		payload json.RawMessage
		err     error
	)
	if search != "" {
		payload, err = s.client.Everything(ctx, search, page)
	} else {
		payload, err = s.client.TopHeadlines(ctx, category, page)
	}
	if err != nil {
		// Both upstream application errors and transport failures fall
		// through uncached; the next request retries the upstream.
		return nil, fmt.Errorf("fetching news: %w", err)
	}

	s.cache.Set(key, payload)
	s.logger.Debug("cached news response", slog.String("key", key))

	return payload, nil
}
