package api

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/greenspace/garden-bot/internal/entities"
	"github.com/greenspace/garden-bot/internal/usecases"
)

// Transcripts are session-only; kept per chat and capped at this many entries.
const maxTranscriptLen = 20

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot             *tgbotapi.BotAPI
	useCase         *usecases.GardenUseCase
	defaultLocation string

	mu          sync.Mutex
	transcripts map[int64][]entities.ChatMessage
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(botToken string, useCase *usecases.GardenUseCase, defaultLocation string) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}

	return &TelegramBot{
		bot:             bot,
		useCase:         useCase,
		defaultLocation: defaultLocation,
		transcripts:     make(map[int64][]entities.ChatMessage),
	}, nil
}

// Start begins listening for and handling Telegram messages
func (t *TelegramBot) Start() {
	log.Printf("Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	log.Println("Bot is now listening for messages...")

	for update := range updates {
		if update.Message == nil {
			continue
		}

		// Log incoming messages
		log.Printf("Received message from %s (ID: %d): %s",
			update.Message.From.UserName,
			update.Message.From.ID,
			update.Message.Text)

		t.handleMessage(update)
	}
}

// handleMessage processes a Telegram message update
func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")

	switch {
	case update.Message.IsCommand():
		t.handleCommand(update.Message, &msg)
	default:
		t.handleNonCommand(update.Message, &msg)
	}

	log.Printf("Sending response to user %s", update.Message.From.UserName)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// handleCommand processes commands like /start, /help, etc.
func (t *TelegramBot) handleCommand(message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	switch message.Command() {
	case "start":
		log.Printf("Handling /start command for user %s", message.From.UserName)
		msg.Text = "Welcome to the Garden Bot! 🌱 Use /plants to see your garden or /help for more information."

	case "help":
		log.Printf("Handling /help command for user %s", message.From.UserName)
		msg.Text = "Available commands:\n" +
			"/start - Start the bot\n" +
			"/plants - Show your plants and their watering status\n" +
			"/add [type] [name] - Add a plant (vegetable, flower, herb, succulent, tree)\n" +
			"/water [name] [ml] - Record a watering event (default 250ml)\n" +
			"/weather [city] - Current weather and watering recommendation\n" +
			"/history - Show this session's conversation with the assistant\n" +
			"/help - Show this help message\n\n" +
			"Anything else is answered by the garden assistant."

	case "plants":
		log.Printf("Handling /plants command for user %s", message.From.UserName)
		t.handlePlantsCommand(msg)

	case "add":
		args := message.CommandArguments()
		log.Printf("Handling /add command with args '%s' for user %s", args, message.From.UserName)
		t.handleAddCommand(args, msg)

	case "water":
		args := message.CommandArguments()
		log.Printf("Handling /water command with args '%s' for user %s", args, message.From.UserName)
		t.handleWaterCommand(args, msg)

	case "weather":
		args := message.CommandArguments()
		log.Printf("Handling /weather command with args '%s' for user %s", args, message.From.UserName)
		t.handleWeatherCommand(args, msg)

	case "history":
		log.Printf("Handling /history command for user %s", message.From.UserName)
		t.handleHistoryCommand(message.Chat.ID, msg)

	default:
		log.Printf("Received unknown command /%s from user %s", message.Command(), message.From.UserName)
		msg.Text = "Unknown command. Use /help to see available commands."
	}
}

// handlePlantsCommand processes the /plants command
func (t *TelegramBot) handlePlantsCommand(msg *tgbotapi.MessageConfig) {
	reports, err := t.useCase.ListPlants(time.Now())
	if err != nil {
		msg.Text = "Error fetching your plants. Please try again later."
		log.Printf("Error fetching plants: %v", err)
		return
	}

	if len(reports) == 0 {
		msg.Text = "No plants yet! Use /add [type] [name] to start your garden."
		return
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Your garden (%d plants):\n\n", len(reports)))
	for _, report := range reports {
		result.WriteString(fmt.Sprintf("%s %s — %s\n", report.Icon, report.Name, report.Status.Label))
		if report.LastWatered != nil {
			result.WriteString(fmt.Sprintf("   💧 Last watered %d day(s) ago, %s\n",
				report.Status.DaysSinceWatered, strings.ToLower(report.Schedule.Label)))
		} else {
			result.WriteString(fmt.Sprintf("   💧 Never watered, %s\n", strings.ToLower(report.Schedule.Label)))
		}
		result.WriteString(fmt.Sprintf("   📊 Today %dml, lifetime %dml\n\n",
			report.DailyWaterMl, report.TotalWaterMl))
	}
	msg.Text = result.String()
}

// handleAddCommand processes the /add [type] [name] command
func (t *TelegramBot) handleAddCommand(args string, msg *tgbotapi.MessageConfig) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		msg.Text = "Please specify a type and a name. Example: /add vegetable Tomatoes"
		return
	}

	plantType := parseType(parts[0])
	name := strings.Join(parts[1:], " ")

	plant, err := t.useCase.AddPlant(name, plantType)
	if err != nil {
		msg.Text = "Couldn't add that plant: " + err.Error()
		return
	}
	msg.Text = fmt.Sprintf("Added %s (%s). It starts as due for watering — use /water %s when you water it.",
		plant.Name, plant.Type, plant.Name)
}

// handleWaterCommand processes the /water [name] [ml] command
func (t *TelegramBot) handleWaterCommand(args string, msg *tgbotapi.MessageConfig) {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		msg.Text = "Please specify a plant name. Example: /water Tomatoes 250"
		return
	}

	amount := usecases.DefaultWaterAmountMl
	if len(parts) > 1 {
		if parsed, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if parsed <= 0 {
				msg.Text = "Water amount must be a positive number of milliliters."
				return
			}
			amount = parsed
			parts = parts[:len(parts)-1]
		}
	}
	name := strings.Join(parts, " ")

	reports, err := t.useCase.ListPlants(time.Now())
	if err != nil {
		msg.Text = "Error fetching your plants. Please try again later."
		log.Printf("Error fetching plants: %v", err)
		return
	}

	for _, report := range reports {
		if strings.EqualFold(report.Name, name) {
			plant, err := t.useCase.WaterPlant(report.ID, amount, time.Now())
			if err != nil {
				msg.Text = "Couldn't record that watering: " + err.Error()
				return
			}
			msg.Text = fmt.Sprintf("💧 %s watered with %dml! Today: %dml, lifetime: %dml.",
				plant.Name, amount, plant.DailyWaterMl, plant.TotalWaterMl)
			return
		}
	}
	msg.Text = fmt.Sprintf("No plant named '%s'. Use /plants to see your garden.", name)
}

// handleWeatherCommand processes the /weather [city] command
func (t *TelegramBot) handleWeatherCommand(args string, msg *tgbotapi.MessageConfig) {
	location := strings.TrimSpace(args)
	if location == "" {
		location = t.defaultLocation
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	snapshot, err := t.useCase.CurrentWeather(ctx, location)
	if err != nil {
		msg.Text = fmt.Sprintf("Weather for '%s' is unavailable right now. Please try again later.", location)
		log.Printf("Error fetching weather: %v", err)
		return
	}
	recommendation := t.useCase.Recommend(snapshot)

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Weather in %s:\n", snapshot.Location))
	result.WriteString(fmt.Sprintf("🌡️ %.0f°C, %s\n", snapshot.TemperatureC, snapshot.Description))
	result.WriteString(fmt.Sprintf("💦 Humidity: %d%%\n", snapshot.HumidityPct))
	result.WriteString(fmt.Sprintf("🌧️ Rainfall (last hour): %.1fmm\n\n", snapshot.RainfallMm))
	result.WriteString(fmt.Sprintf("%s %s\n%s", recommendation.Icon, recommendation.Action, recommendation.Reason))
	msg.Text = result.String()
}

// handleHistoryCommand renders the session transcript for the chat
func (t *TelegramBot) handleHistoryCommand(chatID int64, msg *tgbotapi.MessageConfig) {
	t.mu.Lock()
	transcript := make([]entities.ChatMessage, len(t.transcripts[chatID]))
	copy(transcript, t.transcripts[chatID])
	t.mu.Unlock()

	if len(transcript) == 0 {
		msg.Text = "No conversation yet this session. Ask me anything about your garden!"
		return
	}

	var result strings.Builder
	for _, entry := range transcript {
		if entry.Role == entities.ChatRoleUser {
			result.WriteString("You: ")
		} else {
			result.WriteString("🌿 ")
		}
		result.WriteString(entry.Content)
		result.WriteString("\n\n")
	}
	msg.Text = result.String()
}

// appendTranscript records one exchange entry, dropping the oldest past the cap
func (t *TelegramBot) appendTranscript(chatID int64, role entities.ChatRole, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	transcript := append(t.transcripts[chatID], entities.ChatMessage{Role: role, Content: content})
	if len(transcript) > maxTranscriptLen {
		transcript = transcript[len(transcript)-maxTranscriptLen:]
	}
	t.transcripts[chatID] = transcript
}

// handleNonCommand routes free text to the garden assistant
func (t *TelegramBot) handleNonCommand(message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	log.Printf("Answering free-text question from user %s: %s", message.From.UserName, message.Text)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply := t.useCase.AskCurrent(ctx, message.Text, t.defaultLocation)
	t.appendTranscript(message.Chat.ID, entities.ChatRoleUser, message.Text)
	t.appendTranscript(message.Chat.ID, entities.ChatRoleAssistant, reply)
	msg.Text = reply
}

// parseType lower-cases the user's type argument; unknown types are kept
// as-is and resolve through the default schedule.
func parseType(raw string) entities.PlantType {
	return entities.PlantType(strings.ToLower(strings.TrimSpace(raw)))
}
