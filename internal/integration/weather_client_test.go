package integration

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockWeatherServer serves a fixed JSON response
func mockWeatherServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
}

func TestFetchWeatherNormalizesSnapshot(t *testing.T) {
	// Trimmed OpenWeatherMap current-weather payload
	mockJSON := `{
		"name": "London",
		"main": {"temp": 18.6, "humidity": 72, "pressure": 1012},
		"weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
		"wind": {"speed": 4.1},
		"rain": {"1h": 0.8}
	}`

	server := mockWeatherServer(http.StatusOK, mockJSON)
	defer server.Close()

	client := NewWeatherClient(server.URL, "test-key")
	snapshot, err := client.FetchWeather(context.Background(), "London")
	if err != nil {
		t.Fatalf("Failed to fetch weather: %v", err)
	}

	if snapshot.Location != "London" {
		t.Errorf("Expected location London, got %q", snapshot.Location)
	}
	if snapshot.TemperatureC != 19 {
		t.Errorf("Expected rounded temperature 19, got %v", snapshot.TemperatureC)
	}
	if snapshot.HumidityPct != 72 {
		t.Errorf("Expected humidity 72, got %d", snapshot.HumidityPct)
	}
	if snapshot.RainfallMm != 0.8 {
		t.Errorf("Expected 0.8mm rainfall, got %v", snapshot.RainfallMm)
	}
	if snapshot.Description != "light rain" || snapshot.Conditions != "Rain" || snapshot.Icon != "10d" {
		t.Errorf("Unexpected weather fields: %+v", snapshot)
	}
	if snapshot.WindSpeedMs != 4.1 || snapshot.PressureHPa != 1012 {
		t.Errorf("Unexpected wind/pressure: %+v", snapshot)
	}
}

func TestFetchWeatherDefaultsMissingRainToZero(t *testing.T) {
	mockJSON := `{
		"name": "Cairo",
		"main": {"temp": 35.2, "humidity": 18, "pressure": 1008},
		"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
		"wind": {"speed": 2.0}
	}`

	server := mockWeatherServer(http.StatusOK, mockJSON)
	defer server.Close()

	client := NewWeatherClient(server.URL, "test-key")
	snapshot, err := client.FetchWeather(context.Background(), "Cairo")
	if err != nil {
		t.Fatalf("Failed to fetch weather: %v", err)
	}
	if snapshot.RainfallMm != 0 {
		t.Errorf("Missing rain block should normalize to 0mm, got %v", snapshot.RainfallMm)
	}
}

func TestFetchWeatherTagsProviderFailures(t *testing.T) {
	server := mockWeatherServer(http.StatusNotFound, `{"cod":"404","message":"city not found"}`)
	defer server.Close()

	client := NewWeatherClient(server.URL, "test-key")
	_, err := client.FetchWeather(context.Background(), "Nowhereville")
	if err == nil {
		t.Fatal("Expected an error for a 404 response")
	}
	if !errors.Is(err, ErrWeatherUnavailable) {
		t.Errorf("Provider failures must be tagged ErrWeatherUnavailable, got %v", err)
	}
}

func TestFetchWeatherWithoutAPIKey(t *testing.T) {
	client := NewWeatherClient("", "")
	_, err := client.FetchWeather(context.Background(), "London")
	if !errors.Is(err, ErrWeatherUnavailable) {
		t.Errorf("A missing credential must surface as ErrWeatherUnavailable, got %v", err)
	}
}
