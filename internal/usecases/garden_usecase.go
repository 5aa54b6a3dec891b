package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid"

	"github.com/greenspace/garden-bot/internal/entities"
	"github.com/greenspace/garden-bot/internal/integration"
	"github.com/greenspace/garden-bot/internal/repository"
)

const plantIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DefaultWaterAmountMl is applied when a watering request carries no amount
const DefaultWaterAmountMl = 250

// PlantReport pairs a plant with its derived watering state for display
type PlantReport struct {
	entities.Plant
	Status   entities.WateringStatus   `json:"status"`
	Schedule entities.WateringSchedule `json:"schedule"`
	Icon     string                    `json:"icon"`
}

// GardenUseCase handles business logic for the garden dashboard
type GardenUseCase struct {
	repo      repository.PlantRepository
	weather   *integration.WeatherClient
	scheduler *WateringScheduler
	advisor   *WeatherAdvisor
	assistant *AssistantResponder
}

// NewGardenUseCase creates a new garden use case
func NewGardenUseCase(repo repository.PlantRepository, weather *integration.WeatherClient, assistant *AssistantResponder) *GardenUseCase {
	return &GardenUseCase{
		repo:      repo,
		weather:   weather,
		scheduler: NewWateringScheduler(),
		advisor:   NewWeatherAdvisor(),
		assistant: assistant,
	}
}

// Scheduler exposes the watering scheduler for frontends that render status
func (uc *GardenUseCase) Scheduler() *WateringScheduler {
	return uc.scheduler
}

// AddPlant creates a new plant record. New plants start never-watered, which
// makes them immediately due.
func (uc *GardenUseCase) AddPlant(name string, plantType entities.PlantType) (entities.Plant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Plant{}, fmt.Errorf("plant name must not be empty")
	}

	id, err := gonanoid.Generate(plantIDAlphabet, 12)
	if err != nil {
		return entities.Plant{}, fmt.Errorf("failed to generate plant id: %v", err)
	}

	plant := entities.Plant{
		ID:   id,
		Name: name,
		Type: plantType,
	}
	if err := uc.repo.CreatePlant(plant); err != nil {
		return entities.Plant{}, err
	}

	log.Printf("Added plant %s (%s, %s)", plant.Name, plant.Type, plant.ID)
	return plant, nil
}

// ListPlants returns all plants with their watering status as of today
func (uc *GardenUseCase) ListPlants(today time.Time) ([]PlantReport, error) {
	plants, err := uc.repo.GetPlants()
	if err != nil {
		return nil, err
	}

	reports := make([]PlantReport, 0, len(plants))
	for _, plant := range plants {
		reports = append(reports, PlantReport{
			Plant:    plant,
			Status:   uc.scheduler.StatusOf(plant, today),
			Schedule: uc.scheduler.ScheduleFor(plant.Type),
			Icon:     uc.scheduler.IconFor(plant.Type),
		})
	}
	return reports, nil
}

// WaterPlant records a watering event for the plant. The amount must be
// positive; callers apply DefaultWaterAmountMl when the user gave none.
func (uc *GardenUseCase) WaterPlant(id string, amountMl int, today time.Time) (entities.Plant, error) {
	if amountMl <= 0 {
		return entities.Plant{}, fmt.Errorf("invalid water amount: %d ml", amountMl)
	}
	plant, err := uc.repo.WaterPlant(id, amountMl, startOfDay(today))
	if err != nil {
		return entities.Plant{}, err
	}
	log.Printf("Watered %s with %dml (daily %dml, total %dml)",
		plant.Name, amountMl, plant.DailyWaterMl, plant.TotalWaterMl)
	return plant, nil
}

// ResetDailyWater zeroes daily counters across the garden. Invoked by the
// midnight scheduler; safe to run redundantly.
func (uc *GardenUseCase) ResetDailyWater() error {
	return uc.repo.ResetDailyWater()
}

// CurrentWeather fetches a snapshot for the location
func (uc *GardenUseCase) CurrentWeather(ctx context.Context, location string) (*entities.WeatherSnapshot, error) {
	return uc.weather.FetchWeather(ctx, location)
}

// Recommend maps a snapshot to the global watering recommendation
func (uc *GardenUseCase) Recommend(snapshot *entities.WeatherSnapshot) entities.Recommendation {
	return uc.advisor.Recommend(snapshot)
}

// RecommendFor fetches current weather for the location and derives the
// recommendation. Provider failures degrade to the awaiting-data state; the
// advisor never waits on the network.
func (uc *GardenUseCase) RecommendFor(ctx context.Context, location string) (entities.Recommendation, *entities.WeatherSnapshot) {
	snapshot, err := uc.weather.FetchWeather(ctx, location)
	if err != nil {
		log.Printf("Weather unavailable for recommendation: %v", err)
		return uc.advisor.Recommend(nil), nil
	}
	return uc.advisor.Recommend(snapshot), snapshot
}

// Ask answers a gardening question against the given weather and plants
func (uc *GardenUseCase) Ask(ctx context.Context, question string, snapshot *entities.WeatherSnapshot, plants []entities.Plant) string {
	return uc.assistant.Answer(ctx, question, snapshot, plants)
}

// AskCurrent answers a question against live state: current weather for the
// location (absent on provider failure) and the stored plant list.
func (uc *GardenUseCase) AskCurrent(ctx context.Context, question, location string) string {
	snapshot, err := uc.weather.FetchWeather(ctx, location)
	if err != nil {
		log.Printf("Answering without weather data: %v", err)
		snapshot = nil
	}
	plants, err := uc.repo.GetPlants()
	if err != nil {
		log.Printf("Answering without plant list: %v", err)
		plants = nil
	}
	return uc.assistant.Answer(ctx, question, snapshot, plants)
}
