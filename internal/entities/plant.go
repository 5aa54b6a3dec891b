// Package entities contains the core domain objects for the garden-bot application
package entities

import (
	"time"
)

// PlantType classifies a plant for scheduling purposes
type PlantType string

// Known plant types. Anything else falls back to the default schedule.
const (
	PlantTypeVegetable PlantType = "vegetable"
	PlantTypeFlower    PlantType = "flower"
	PlantTypeHerb      PlantType = "herb"
	PlantTypeSucculent PlantType = "succulent"
	PlantTypeTree      PlantType = "tree"
)

// NeverWateredDays is the days-since-watered sentinel for plants with no
// recorded watering. It is large enough to compare as due against any
// schedule interval, so a never-watered plant is always immediately due.
const NeverWateredDays = 1 << 30

// Plant represents a single garden plant and its watering history
type Plant struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            PlantType  `json:"type"`
	LastWatered     *time.Time `json:"lastWatered,omitempty"` // nil means never watered
	DailyWaterMl    int        `json:"dailyWaterMl"`          // resets to 0 at local midnight
	TotalWaterMl    int        `json:"totalWaterMl"`
	WaterEventCount int        `json:"waterEventCount"`
}

// WateringSchedule is the static per-type watering cadence
type WateringSchedule struct {
	IntervalDays int    `json:"intervalDays"`
	Label        string `json:"label"`
}

// UrgencyTier classifies how overdue a plant's watering is
type UrgencyTier string

const (
	UrgencyGood     UrgencyTier = "good"
	UrgencyWarning  UrgencyTier = "warning"
	UrgencyCritical UrgencyTier = "critical"
)

// WateringStatus is the derived per-plant watering state. It is computed on
// demand and never stored.
type WateringStatus struct {
	DaysSinceWatered int         `json:"daysSinceWatered"`
	IsDue            bool        `json:"isDue"`
	Urgency          UrgencyTier `json:"urgency"`
	OverdueDays      int         `json:"overdueDays"` // meaningful only when IsDue
	Label            string      `json:"label"`
	Color            string      `json:"color"`
}
