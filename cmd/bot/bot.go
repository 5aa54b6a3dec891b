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
	log.Println("Starting Garden Bot...")

	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN etc.
	cfg := config.Load()

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	// The bot frontend always uses a durable store so the garden survives
	// restarts; an empty path falls back to the repository default.
	repo, err := repository.NewSQLitePlantRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}
	defer repo.Close()

	// Initialize weather client
	weatherClient := integration.NewWeatherClient("", cfg.OpenWeatherAPIKey)

	// Initialize the assistant; missing credentials leave the rule-based tier
	var provider usecases.TextProvider
	if cfg.HuggingFaceAPIKey != "" {
		hf, err := huggingface.NewHuggingFaceService("", cfg.HuggingFaceAPIKey)
		if err != nil {
			log.Printf("Hugging Face tier disabled: %v", err)
		} else {
			provider = hf
		}
	} else if cfg.OpenAIAPIKey != "" {
		oa, err := openai.NewGardenAdvisorService()
		if err != nil {
			log.Printf("OpenAI tier disabled: %v", err)
		} else {
			provider = oa
		}
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

	// Initialize Telegram bot
	telegramBot, err := api.NewTelegramBot(cfg.TelegramToken, useCase, cfg.DefaultLocation)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	// Start the bot
	telegramBot.Start()
}
