package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/greenspace/garden-bot/internal/entities"
)

// MemoryPlantRepository implements PlantRepository with session-only storage.
// Used when no database path is configured, and by tests. Updates are
// additive under a single lock so concurrent watering events both land.
type MemoryPlantRepository struct {
	mu     sync.Mutex
	plants []entities.Plant
}

// NewMemoryPlantRepository creates an empty in-memory repository
func NewMemoryPlantRepository() *MemoryPlantRepository {
	return &MemoryPlantRepository{}
}

// Close is a no-op for the in-memory store
func (r *MemoryPlantRepository) Close() error {
	return nil
}

// CreatePlant stores a new plant record
func (r *MemoryPlantRepository) CreatePlant(plant entities.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plants {
		if existing.ID == plant.ID {
			return fmt.Errorf("duplicate plant id: %s", plant.ID)
		}
	}
	r.plants = append(r.plants, plant)
	return nil
}

// GetPlants returns a copy of all plant records in insertion order
func (r *MemoryPlantRepository) GetPlants() ([]entities.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plants := make([]entities.Plant, len(r.plants))
	copy(plants, r.plants)
	return plants, nil
}

// GetPlantByID returns a single plant record
func (r *MemoryPlantRepository) GetPlantByID(id string) (entities.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, plant := range r.plants {
		if plant.ID == id {
			return plant, nil
		}
	}
	return entities.Plant{}, fmt.Errorf("%w: %s", ErrPlantNotFound, id)
}

// WaterPlant applies a watering event; increments are merged, never
// overwritten, and the last-watered date only moves forward.
func (r *MemoryPlantRepository) WaterPlant(id string, amountMl int, wateredAt time.Time) (entities.Plant, error) {
	if amountMl <= 0 {
		return entities.Plant{}, fmt.Errorf("invalid water amount: %d ml", amountMl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.plants {
		if r.plants[i].ID != id {
			continue
		}
		plant := &r.plants[i]
		plant.DailyWaterMl += amountMl
		plant.TotalWaterMl += amountMl
		plant.WaterEventCount++
		if plant.LastWatered == nil || plant.LastWatered.Before(wateredAt) {
			watered := wateredAt
			plant.LastWatered = &watered
		}
		return *plant, nil
	}
	return entities.Plant{}, fmt.Errorf("%w: %s", ErrPlantNotFound, id)
}

// ResetDailyWater zeroes every plant's daily counter
func (r *MemoryPlantRepository) ResetDailyWater() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.plants {
		r.plants[i].DailyWaterMl = 0
	}
	return nil
}
