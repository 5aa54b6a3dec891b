package usecases

import (
	"testing"
	"time"

	"github.com/greenspace/garden-bot/internal/entities"
)

// fixed reference day for deterministic tests
var today = time.Date(2025, time.June, 15, 14, 30, 0, 0, time.Local)

func daysAgo(n int) *time.Time {
	t := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local).AddDate(0, 0, -n)
	return &t
}

func TestDaysSinceWatered(t *testing.T) {
	s := NewWateringScheduler()

	// Same calendar day must be 0 regardless of time-of-day
	morning := time.Date(2025, time.June, 15, 6, 0, 0, 0, time.Local)
	if got := s.DaysSinceWatered(&morning, today); got != 0 {
		t.Errorf("Expected 0 days for same-day watering, got %d", got)
	}

	if got := s.DaysSinceWatered(daysAgo(3), today); got != 3 {
		t.Errorf("Expected 3 days, got %d", got)
	}

	// Future-dated input is clamped to 0
	future := today.AddDate(0, 0, 2)
	if got := s.DaysSinceWatered(&future, today); got != 0 {
		t.Errorf("Expected future date clamped to 0, got %d", got)
	}

	// Never watered resolves to the sentinel
	if got := s.DaysSinceWatered(nil, today); got != entities.NeverWateredDays {
		t.Errorf("Expected NeverWateredDays sentinel, got %d", got)
	}
}

func TestScheduleFor(t *testing.T) {
	s := NewWateringScheduler()

	tests := []struct {
		plantType entities.PlantType
		interval  int
	}{
		{entities.PlantTypeVegetable, 1},
		{entities.PlantTypeFlower, 2},
		{entities.PlantTypeHerb, 1},
		{entities.PlantTypeSucculent, 7},
		{entities.PlantTypeTree, 3},
		{entities.PlantType("cactus"), 2}, // unknown type gets the default
		{entities.PlantType(""), 2},
	}

	for _, tt := range tests {
		schedule := s.ScheduleFor(tt.plantType)
		if schedule.IntervalDays != tt.interval {
			t.Errorf("ScheduleFor(%q): expected interval %d, got %d", tt.plantType, tt.interval, schedule.IntervalDays)
		}
		if schedule.Label == "" {
			t.Errorf("ScheduleFor(%q): expected a non-empty label", tt.plantType)
		}
	}
}

func TestIsDueAtIntervalBoundary(t *testing.T) {
	s := NewWateringScheduler()

	for _, plantType := range []entities.PlantType{
		entities.PlantTypeVegetable,
		entities.PlantTypeFlower,
		entities.PlantTypeHerb,
		entities.PlantTypeSucculent,
		entities.PlantTypeTree,
	} {
		interval := s.ScheduleFor(plantType).IntervalDays

		atInterval := entities.Plant{Type: plantType, LastWatered: daysAgo(interval)}
		if !s.IsDue(atInterval, today) {
			t.Errorf("%s watered %d days ago should be due", plantType, interval)
		}

		if interval > 1 {
			beforeInterval := entities.Plant{Type: plantType, LastWatered: daysAgo(interval - 1)}
			if s.IsDue(beforeInterval, today) {
				t.Errorf("%s watered %d days ago should not be due", plantType, interval-1)
			}
		}
	}
}

func TestStatusOfWateredToday(t *testing.T) {
	s := NewWateringScheduler()

	// Watered today is always good, even for daily-interval types
	for _, plantType := range []entities.PlantType{entities.PlantTypeVegetable, entities.PlantTypeSucculent} {
		plant := entities.Plant{Type: plantType, LastWatered: daysAgo(0)}
		status := s.StatusOf(plant, today)
		if status.Urgency != entities.UrgencyGood {
			t.Errorf("%s watered today: expected good tier, got %s", plantType, status.Urgency)
		}
		if status.Label != "Watered today" {
			t.Errorf("%s watered today: expected 'Watered today' label, got %q", plantType, status.Label)
		}
		if status.IsDue {
			t.Errorf("%s watered today must never also be due", plantType)
		}
	}
}

func TestStatusOfOverdueTiers(t *testing.T) {
	s := NewWateringScheduler()

	tests := []struct {
		name      string
		plantType entities.PlantType
		daysSince int
		overdue   int
		urgency   entities.UrgencyTier
	}{
		{"flower due 1 day over interval start", entities.PlantTypeFlower, 2, 1, entities.UrgencyWarning},
		{"flower 2 days overdue", entities.PlantTypeFlower, 3, 2, entities.UrgencyWarning},
		{"flower 3 days overdue escalates", entities.PlantTypeFlower, 4, 3, entities.UrgencyCritical},
		{"vegetable a week behind", entities.PlantTypeVegetable, 7, 7, entities.UrgencyCritical},
		{"tree just due", entities.PlantTypeTree, 3, 1, entities.UrgencyWarning},
	}

	for _, tt := range tests {
		plant := entities.Plant{Type: tt.plantType, LastWatered: daysAgo(tt.daysSince)}
		status := s.StatusOf(plant, today)
		if !status.IsDue {
			t.Errorf("%s: expected due", tt.name)
			continue
		}
		if status.OverdueDays != tt.overdue {
			t.Errorf("%s: expected %d overdue days, got %d", tt.name, tt.overdue, status.OverdueDays)
		}
		if status.Urgency != tt.urgency {
			t.Errorf("%s: expected tier %s, got %s", tt.name, tt.urgency, status.Urgency)
		}
	}
}

func TestStatusOfHealthy(t *testing.T) {
	s := NewWateringScheduler()

	plant := entities.Plant{Type: entities.PlantTypeSucculent, LastWatered: daysAgo(3)}
	status := s.StatusOf(plant, today)
	if status.IsDue {
		t.Error("Succulent watered 3 days ago should not be due")
	}
	if status.Urgency != entities.UrgencyGood || status.Label != "Healthy" {
		t.Errorf("Expected healthy/good, got %s/%q", status.Urgency, status.Label)
	}
}

func TestStatusOfNeverWatered(t *testing.T) {
	s := NewWateringScheduler()

	// Policy: never-watered is always immediately due, at critical urgency
	plant := entities.Plant{Type: entities.PlantTypeSucculent}
	if !s.IsDue(plant, today) {
		t.Error("Never-watered plant should always be due")
	}
	status := s.StatusOf(plant, today)
	if status.Urgency != entities.UrgencyCritical {
		t.Errorf("Never-watered plant: expected critical tier, got %s", status.Urgency)
	}
}

func TestRecordWateringIsAdditive(t *testing.T) {
	s := NewWateringScheduler()

	plant := entities.Plant{Name: "Tomatoes", Type: entities.PlantTypeVegetable}

	plant, err := s.RecordWatering(plant, 250, today)
	if err != nil {
		t.Fatalf("First watering failed: %v", err)
	}
	plant, err = s.RecordWatering(plant, 500, today)
	if err != nil {
		t.Fatalf("Second watering failed: %v", err)
	}

	if plant.TotalWaterMl != 750 || plant.DailyWaterMl != 750 {
		t.Errorf("Expected 750ml daily and total, got daily=%d total=%d", plant.DailyWaterMl, plant.TotalWaterMl)
	}
	if plant.WaterEventCount != 2 {
		t.Errorf("Expected 2 watering events, got %d", plant.WaterEventCount)
	}
	if s.DaysSinceWatered(plant.LastWatered, today) != 0 {
		t.Error("Plant watered today should report 0 days since watered")
	}
	if s.IsDue(plant, today) {
		t.Error("Plant watered today must not be reported as due")
	}
}

func TestRecordWateringRejectsNonPositiveAmounts(t *testing.T) {
	s := NewWateringScheduler()

	original := entities.Plant{Name: "Basil", Type: entities.PlantTypeHerb, TotalWaterMl: 100, DailyWaterMl: 100, WaterEventCount: 1}

	for _, amount := range []int{0, -250} {
		updated, err := s.RecordWatering(original, amount, today)
		if err == nil {
			t.Errorf("Expected error for amount %d", amount)
		}
		if updated != original {
			t.Errorf("Plant must be untouched after rejected amount %d", amount)
		}
	}
}

func TestResetDailyIsIdempotent(t *testing.T) {
	s := NewWateringScheduler()

	watered := daysAgo(1)
	plants := []entities.Plant{
		{Name: "Tomatoes", DailyWaterMl: 500, TotalWaterMl: 1500, LastWatered: watered},
		{Name: "Roses", DailyWaterMl: 250, TotalWaterMl: 250, LastWatered: watered},
	}

	once := s.ResetDaily(plants)
	twice := s.ResetDaily(once)

	for i, plant := range twice {
		if plant.DailyWaterMl != 0 {
			t.Errorf("Plant %d: expected daily water 0, got %d", i, plant.DailyWaterMl)
		}
		if plant.TotalWaterMl != plants[i].TotalWaterMl {
			t.Errorf("Plant %d: total water must survive the reset", i)
		}
		if plant.LastWatered != watered {
			t.Errorf("Plant %d: last-watered date must survive the reset", i)
		}
	}
	if len(once) != len(twice) {
		t.Error("Applying the reset twice must be equivalent to applying it once")
	}
}
