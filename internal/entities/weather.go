package entities

// WeatherSnapshot is a single immutable weather reading for a location.
// It is produced by the weather provider adapter and held only for the
// current request.
type WeatherSnapshot struct {
	Location     string  `json:"location"`
	TemperatureC float64 `json:"temperature"`
	HumidityPct  int     `json:"humidity"`
	WindSpeedMs  float64 `json:"windSpeed"`
	PressureHPa  int     `json:"pressure"`
	RainfallMm   float64 `json:"rainfall"` // last-hour accumulation
	Description  string  `json:"description"`
	Conditions   string  `json:"conditions"`
	Icon         string  `json:"icon"`
}

// Recommendation is the global watering advice derived from a snapshot.
// Stateless, recomputed on every reading.
type Recommendation struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}
