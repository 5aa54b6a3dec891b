package usecases

import (
	"fmt"

	"github.com/greenspace/garden-bot/internal/entities"
)

// WeatherAdvisor maps a weather snapshot to a single watering recommendation.
// It is a global signal over the snapshot only; per-plant decisions belong to
// the WateringScheduler.
type WeatherAdvisor struct{}

// NewWeatherAdvisor creates a new weather advisor
func NewWeatherAdvisor() *WeatherAdvisor {
	return &WeatherAdvisor{}
}

// Recommend evaluates the ordered rule list against the snapshot. The rules
// overlap, so first match wins: rainfall beats the hot/dry rule even when
// both hold. A nil snapshot is the loading state, not an error.
func (a *WeatherAdvisor) Recommend(snapshot *entities.WeatherSnapshot) entities.Recommendation {
	if snapshot == nil {
		return entities.Recommendation{
			Action: "Loading weather data...",
			Color:  "gray",
			Icon:   "⏳",
		}
	}

	if snapshot.RainfallMm > 5 {
		return entities.Recommendation{
			Action: "Skip watering today - Recent rainfall detected",
			Reason: fmt.Sprintf("%.0fmm of rain means your plants have enough water", snapshot.RainfallMm),
			Color:  "#0d9488",
			Icon:   "🌧️",
		}
	}

	if snapshot.TemperatureC > 25 && snapshot.HumidityPct < 40 {
		return entities.Recommendation{
			Action: "Water immediately - Hot and dry conditions",
			Reason: "High temperature and low humidity will stress your plants",
			Color:  "#b91c1c",
			Icon:   "💧",
		}
	}

	if snapshot.TemperatureC > 20 && snapshot.HumidityPct < 60 {
		return entities.Recommendation{
			Action: "Water lightly - Moderate conditions",
			Reason: "Plants may need water, check soil moisture first",
			Color:  "#ca8a04",
			Icon:   "🌱",
		}
	}

	if snapshot.TemperatureC < 20 && snapshot.HumidityPct > 70 {
		return entities.Recommendation{
			Action: "No watering needed - Cool and humid",
			Reason: "Plants can conserve water in these conditions",
			Color:  "#15803d",
			Icon:   "✅",
		}
	}

	return entities.Recommendation{
		Action: "Light watering recommended",
		Reason: "General maintenance watering for healthy growth",
		Color:  "#15803d",
		Icon:   "🌿",
	}
}
