// Package integration handles external service interactions
package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/greenspace/garden-bot/internal/entities"
)

// ErrWeatherUnavailable tags every provider failure so callers can render a
// degraded "weather unavailable" state instead of crashing.
var ErrWeatherUnavailable = errors.New("weather unavailable")

// WeatherClient fetches current conditions from OpenWeatherMap and
// normalizes them into a WeatherSnapshot
type WeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewWeatherClient creates a new weather client
func NewWeatherClient(baseURL, apiKey string) *WeatherClient {
	if baseURL == "" {
		// Default provider URL
		baseURL = "https://api.openweathermap.org/data/2.5/weather"
	}
	return &WeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// openWeatherResponse is the subset of the provider payload we consume
type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain map[string]float64 `json:"rain"`
}

// FetchWeather requests current weather for a free-text location name
func (wc *WeatherClient) FetchWeather(ctx context.Context, location string) (*entities.WeatherSnapshot, error) {
	if wc.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENWEATHER_API_KEY is not set", ErrWeatherUnavailable)
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", wc.apiKey)
	query.Set("units", "metric")
	requestURL := wc.baseURL + "?" + query.Encode()

	log.Printf("Fetching weather for %q", location)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	res, err := wc.client.Do(req)
	if err != nil {
		log.Printf("Error fetching weather: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Printf("Weather provider returned status %d %s", res.StatusCode, res.Status)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrWeatherUnavailable, res.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrWeatherUnavailable, err)
	}

	snapshot := &entities.WeatherSnapshot{
		Location:     payload.Name,
		TemperatureC: math.Round(payload.Main.Temp),
		HumidityPct:  payload.Main.Humidity,
		PressureHPa:  payload.Main.Pressure,
		WindSpeedMs:  payload.Wind.Speed,
		RainfallMm:   payload.Rain["1h"],
	}
	if len(payload.Weather) > 0 {
		snapshot.Description = payload.Weather[0].Description
		snapshot.Conditions = payload.Weather[0].Main
		snapshot.Icon = payload.Weather[0].Icon
	}

	log.Printf("Weather for %s: %.0f°C, %d%% humidity, %.1fmm rain",
		snapshot.Location, snapshot.TemperatureC, snapshot.HumidityPct, snapshot.RainfallMm)
	return snapshot, nil
}
