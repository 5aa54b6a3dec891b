// Package repository provides data access implementations
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/greenspace/garden-bot/internal/entities"
	_ "github.com/mattn/go-sqlite3"
)

// ErrPlantNotFound is returned when a plant id has no record
var ErrPlantNotFound = errors.New("plant not found")

// PlantRepository defines the interface for plant persistence operations.
// The engine behaves identically whether plants live in session memory or in
// a durable store; the store is a durability concern, not a decision input.
type PlantRepository interface {
	CreatePlant(plant entities.Plant) error
	GetPlants() ([]entities.Plant, error)
	GetPlantByID(id string) (entities.Plant, error)
	WaterPlant(id string, amountMl int, wateredAt time.Time) (entities.Plant, error)
	ResetDailyWater() error
	Close() error
}

// SQLitePlantRepository implements PlantRepository using SQLite
type SQLitePlantRepository struct {
	db     *sql.DB
	DBPath string
}

// NewSQLitePlantRepository creates and initializes a new SQLite repository
func NewSQLitePlantRepository(dbPath string) (*SQLitePlantRepository, error) {
	if dbPath == "" {
		// Set default path if not specified
		dbDir := "data"
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "garden.db")
	}

	log.Printf("Opening database at %s", dbPath)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS plants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		last_watered DATETIME,
		daily_water_ml INTEGER NOT NULL DEFAULT 0,
		total_water_ml INTEGER NOT NULL DEFAULT 0,
		water_event_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_plants_type ON plants(type);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &SQLitePlantRepository{
		db:     db,
		DBPath: dbPath,
	}, nil
}

// Close closes the database connection
func (r *SQLitePlantRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreatePlant stores a new plant record
func (r *SQLitePlantRepository) CreatePlant(plant entities.Plant) error {
	_, err := r.db.Exec(`
		INSERT INTO plants(id, name, type, last_watered, daily_water_ml, total_water_ml, water_event_count)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		plant.ID,
		plant.Name,
		string(plant.Type),
		nullableTime(plant.LastWatered),
		plant.DailyWaterMl,
		plant.TotalWaterMl,
		plant.WaterEventCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plant %s: %v", plant.Name, err)
	}
	log.Printf("Stored plant %s (%s)", plant.Name, plant.ID)
	return nil
}

// GetPlants retrieves all plant records ordered by creation time
func (r *SQLitePlantRepository) GetPlants() ([]entities.Plant, error) {
	rows, err := r.db.Query(`
		SELECT id, name, type, last_watered, daily_water_ml, total_water_ml, water_event_count
		FROM plants
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plants: %v", err)
	}
	defer rows.Close()

	var plants []entities.Plant
	for rows.Next() {
		plant, err := scanPlant(rows.Scan)
		if err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %v", err)
	}

	return plants, nil
}

// GetPlantByID retrieves a single plant record
func (r *SQLitePlantRepository) GetPlantByID(id string) (entities.Plant, error) {
	row := r.db.QueryRow(`
		SELECT id, name, type, last_watered, daily_water_ml, total_water_ml, water_event_count
		FROM plants WHERE id = ?`, id)

	plant, err := scanPlant(row.Scan)
	if err == sql.ErrNoRows {
		return entities.Plant{}, fmt.Errorf("%w: %s", ErrPlantNotFound, id)
	}
	return plant, err
}

// WaterPlant applies a watering event as a single additive update, so
// concurrent events for the same plant both land. The last-watered date only
// moves forward in time.
func (r *SQLitePlantRepository) WaterPlant(id string, amountMl int, wateredAt time.Time) (entities.Plant, error) {
	if amountMl <= 0 {
		return entities.Plant{}, fmt.Errorf("invalid water amount: %d ml", amountMl)
	}

	result, err := r.db.Exec(`
		UPDATE plants SET
			daily_water_ml = daily_water_ml + ?,
			total_water_ml = total_water_ml + ?,
			water_event_count = water_event_count + 1,
			last_watered = CASE
				WHEN last_watered IS NULL OR last_watered < ? THEN ?
				ELSE last_watered
			END
		WHERE id = ?`,
		amountMl, amountMl, wateredAt, wateredAt, id)
	if err != nil {
		return entities.Plant{}, fmt.Errorf("failed to record watering for %s: %v", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return entities.Plant{}, fmt.Errorf("failed to check watering update: %v", err)
	}
	if affected == 0 {
		return entities.Plant{}, fmt.Errorf("%w: %s", ErrPlantNotFound, id)
	}

	return r.GetPlantByID(id)
}

// ResetDailyWater zeroes every plant's daily counter. Idempotent; running it
// twice on the same day changes nothing further.
func (r *SQLitePlantRepository) ResetDailyWater() error {
	result, err := r.db.Exec(`UPDATE plants SET daily_water_ml = 0 WHERE daily_water_ml <> 0`)
	if err != nil {
		return fmt.Errorf("failed to reset daily water: %v", err)
	}
	affected, _ := result.RowsAffected()
	log.Printf("Daily water reset applied to %d plants", affected)
	return nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// scanPlant reads one plant row via the given scan function
func scanPlant(scan func(dest ...interface{}) error) (entities.Plant, error) {
	var plant entities.Plant
	var plantType string
	var lastWatered sql.NullTime

	if err := scan(
		&plant.ID,
		&plant.Name,
		&plantType,
		&lastWatered,
		&plant.DailyWaterMl,
		&plant.TotalWaterMl,
		&plant.WaterEventCount,
	); err != nil {
		if err == sql.ErrNoRows {
			return entities.Plant{}, err
		}
		return entities.Plant{}, fmt.Errorf("failed to scan plant row: %v", err)
	}

	plant.Type = entities.PlantType(plantType)
	if lastWatered.Valid {
		watered := lastWatered.Time
		plant.LastWatered = &watered
	}
	return plant, nil
}
