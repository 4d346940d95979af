package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sakif/news-channel/internal/cache"
)

// WeatherClient is the slice of the weather upstream this service needs.
type WeatherClient interface {
	Current(ctx context.Context, lat, lon float64) (json.RawMessage, error)
}

// WeatherService is the caching proxy in front of the weather upstream,
// mirroring NewsService for the frontend's weather widget.
type WeatherService struct {
	client WeatherClient
	cache  *cache.Cache
	logger *slog.Logger
}

func NewWeatherService(client WeatherClient, c *cache.Cache, logger *slog.Logger) *WeatherService {
	return &WeatherService{
		client: client,
		cache:  c,
		logger: logger,
	}
}

// GetCurrent returns current conditions for a coordinate pair, from cache
// when possible. Coordinates are rounded to two decimals (~1km) in the cache
// key so jittery browser geolocation readings still hit the same entry.
func (s *WeatherService) GetCurrent(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	key := fmt.Sprintf("weather_%.2f_%.2f", lat, lon)

	if payload, ok := s.cache.Get(key); ok {
		s.logger.Debug("serving weather from cache", slog.String("key", key))
		return payload, nil
	}

	payload, err := s.client.Current(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}

	s.cache.Set(key, payload)
	return payload, nil
}
