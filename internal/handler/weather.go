package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/news-channel/internal/apperror"
	"github.com/sakif/news-channel/internal/service"
)

// WeatherHandler exposes the cached weather proxy.
type WeatherHandler struct {
	weather *service.WeatherService
	logger  *slog.Logger
}

func NewWeatherHandler(weather *service.WeatherService, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{weather: weather, logger: logger}
}

// HandleGetWeather proxies a current-conditions query through the cache.
//
// HTTP: GET /api/weather?lat=&lon=
func (h *WeatherHandler) HandleGetWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, apperror.ValidationFailed("", "lat and lon required"))
		return
	}

	payload, err := h.weather.GetCurrent(r.Context(), lat, lon)
	if err != nil {
		h.logger.Error("weather fetch failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch weather"})
		return
	}

	writeRawJSON(w, http.StatusOK, payload)
}
