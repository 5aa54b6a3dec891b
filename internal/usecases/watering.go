// Package usecases contains the application's business logic
package usecases

import (
	"fmt"
	"time"

	"github.com/greenspace/garden-bot/internal/entities"
)

// wateringSchedules maps each known plant type to its watering cadence.
// The table is constant; unknown types resolve through defaultSchedule.
var wateringSchedules = map[entities.PlantType]entities.WateringSchedule{
	entities.PlantTypeVegetable: {IntervalDays: 1, Label: "Daily watering"},
	entities.PlantTypeFlower:    {IntervalDays: 2, Label: "Every 2 days"},
	entities.PlantTypeHerb:      {IntervalDays: 1, Label: "Daily watering"},
	entities.PlantTypeSucculent: {IntervalDays: 7, Label: "Weekly watering"},
	entities.PlantTypeTree:      {IntervalDays: 3, Label: "Every 3 days"},
}

// defaultSchedule is used for any unrecognized plant type. Unknown types must
// never crash and must never be treated as never-due.
var defaultSchedule = entities.WateringSchedule{IntervalDays: 2, Label: "Every 2 days"}

var plantIcons = map[entities.PlantType]string{
	entities.PlantTypeVegetable: "🥕",
	entities.PlantTypeFlower:    "🌸",
	entities.PlantTypeHerb:      "🌿",
	entities.PlantTypeSucculent: "🌵",
	entities.PlantTypeTree:      "🌳",
}

// WateringScheduler owns the per-type schedule table and derives per-plant
// watering status. All methods are pure; callers pass today's date explicitly.
type WateringScheduler struct{}

// NewWateringScheduler creates a new watering scheduler
func NewWateringScheduler() *WateringScheduler {
	return &WateringScheduler{}
}

// startOfDay normalizes t to local midnight so same-day waterings always
// compare as 0 days apart regardless of time-of-day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysSinceWatered returns whole days between the last watering and today,
// clamped to a minimum of 0 to guard against future-dated input. A nil
// lastWatered returns entities.NeverWateredDays.
func (s *WateringScheduler) DaysSinceWatered(lastWatered *time.Time, today time.Time) int {
	if lastWatered == nil {
		return entities.NeverWateredDays
	}
	days := int(startOfDay(today).Sub(startOfDay(*lastWatered)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ScheduleFor returns the watering schedule for a plant type, falling back to
// the default 2-day schedule for anything unrecognized.
func (s *WateringScheduler) ScheduleFor(plantType entities.PlantType) entities.WateringSchedule {
	if schedule, ok := wateringSchedules[plantType]; ok {
		return schedule
	}
	return defaultSchedule
}

// IconFor returns the display icon for a plant type
func (s *WateringScheduler) IconFor(plantType entities.PlantType) string {
	if icon, ok := plantIcons[plantType]; ok {
		return icon
	}
	return "🌱"
}

// IsDue reports whether the plant has reached its watering interval
func (s *WateringScheduler) IsDue(plant entities.Plant, today time.Time) bool {
	return s.DaysSinceWatered(plant.LastWatered, today) >= s.ScheduleFor(plant.Type).IntervalDays
}

// StatusOf derives the plant's watering status for today. A plant watered
// today is always reported good, even when its interval is sub-daily.
func (s *WateringScheduler) StatusOf(plant entities.Plant, today time.Time) entities.WateringStatus {
	daysSince := s.DaysSinceWatered(plant.LastWatered, today)
	schedule := s.ScheduleFor(plant.Type)

	if daysSince == 0 {
		return entities.WateringStatus{
			DaysSinceWatered: 0,
			Urgency:          entities.UrgencyGood,
			Label:            "Watered today",
			Color:            "#16a34a",
		}
	}

	if daysSince >= schedule.IntervalDays {
		overdue := daysSince - schedule.IntervalDays + 1
		status := entities.WateringStatus{
			DaysSinceWatered: daysSince,
			IsDue:            true,
			OverdueDays:      overdue,
		}
		if overdue > 2 {
			status.Urgency = entities.UrgencyCritical
			status.Label = "Urgent - Very thirsty!"
			status.Color = "#dc2626"
		} else {
			status.Urgency = entities.UrgencyWarning
			status.Label = "Needs water!"
			status.Color = "#ea580c"
		}
		return status
	}

	return entities.WateringStatus{
		DaysSinceWatered: daysSince,
		Urgency:          entities.UrgencyGood,
		Label:            "Healthy",
		Color:            "#15803d",
	}
}

// RecordWatering returns a copy of the plant updated for a watering event of
// amountMl at today. Non-positive amounts are a caller error and leave the
// plant untouched.
func (s *WateringScheduler) RecordWatering(plant entities.Plant, amountMl int, today time.Time) (entities.Plant, error) {
	if amountMl <= 0 {
		return plant, fmt.Errorf("invalid water amount: %d ml", amountMl)
	}
	watered := startOfDay(today)
	plant.LastWatered = &watered
	plant.DailyWaterMl += amountMl
	plant.TotalWaterMl += amountMl
	plant.WaterEventCount++
	return plant, nil
}

// ResetDaily zeroes every plant's daily water counter. Lifetime totals and
// last-watered dates are untouched; running it twice is the same as once.
func (s *WateringScheduler) ResetDaily(plants []entities.Plant) []entities.Plant {
	reset := make([]entities.Plant, len(plants))
	for i, plant := range plants {
		plant.DailyWaterMl = 0
		reset[i] = plant
	}
	return reset
}
