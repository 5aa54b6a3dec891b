package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/greenspace/garden-bot/internal/api"
	"github.com/greenspace/garden-bot/internal/config"
	"github.com/greenspace/garden-bot/internal/integration"
	"github.com/greenspace/garden-bot/internal/integration/huggingface"
	"github.com/greenspace/garden-bot/internal/integration/openai"
	"github.com/greenspace/garden-bot/internal/repository"
	"github.com/greenspace/garden-bot/internal/scheduler"
	"github.com/greenspace/garden-bot/internal/usecases"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Garden Bot API server...")

	_ = godotenv.Load() // OPENWEATHER_API_KEY etc.
	cfg := config.Load()

	// Initialize repository: durable when a DB path is configured,
	// session-only otherwise. The engine behaves identically with either.
	var repo repository.PlantRepository
	if cfg.DBPath != "" {
		sqliteRepo, err := repository.NewSQLitePlantRepository(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize repository: %v", err)
		}
		repo = sqliteRepo
	} else {
		log.Println("GARDEN_DB_PATH not set, plants are kept in memory only")
		repo = repository.NewMemoryPlantRepository()
	}
	defer repo.Close()

	// Initialize weather client
	weatherClient := integration.NewWeatherClient("", cfg.OpenWeatherAPIKey)

	// Initialize the assistant. A missing credential is a normal startup
	// condition: the responder then answers from its rule-based tier.
	var provider usecases.TextProvider
	if cfg.HuggingFaceAPIKey != "" {
		hf, err := huggingface.NewHuggingFaceService("", cfg.HuggingFaceAPIKey)
		if err != nil {
			log.Printf("Hugging Face tier disabled: %v", err)
		} else {
			log.Println("Assistant remote tier: Hugging Face")
			provider = hf
		}
	} else if cfg.OpenAIAPIKey != "" {
		oa, err := openai.NewGardenAdvisorService()
		if err != nil {
			log.Printf("OpenAI tier disabled: %v", err)
		} else {
			log.Println("Assistant remote tier: OpenAI")
			provider = oa
		}
	} else {
		log.Println("No LLM credential configured, assistant runs rule-based only")
	}
	assistant := usecases.NewAssistantResponder(provider, 0)

	// Initialize use case
	useCase := usecases.NewGardenUseCase(repo, weatherClient, assistant)

	// Arm the local-midnight daily water reset
	reset, err := scheduler.StartDailyReset(useCase)
	if err != nil {
		log.Fatalf("Failed to schedule daily reset: %v", err)
	}
	defer reset.Stop()

	// Start the HTTP API
	server := api.NewHTTPServer(useCase, cfg.DefaultLocation)
	if err := server.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
