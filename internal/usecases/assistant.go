package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/greenspace/garden-bot/internal/entities"
)

// TextProvider generates a free-text completion for a prompt. Implementations
// live in internal/integration; the responder treats every failure as soft.
type TextProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// greetings answered directly, before any network activity
var greetings = map[string]bool{
	"hi":           true,
	"hello":        true,
	"hey":          true,
	"good morning": true,
	"good evening": true,
}

const greetingReply = "Hi there! I'm your garden assistant 🌿. How can I help you today?"

// Replies shorter than this are treated as unusable model output.
const minUsefulReplyLen = 20

// AssistantResponder answers gardening questions. It tries the configured
// remote text provider first and falls back to deterministic keyword rules on
// any failure, so Answer always resolves to a string.
type AssistantResponder struct {
	provider TextProvider // nil when no credential is configured
	timeout  time.Duration
}

// NewAssistantResponder creates a responder. A nil provider is a normal
// configuration: every question then resolves through the fallback tier.
func NewAssistantResponder(provider TextProvider, timeout time.Duration) *AssistantResponder {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AssistantResponder{provider: provider, timeout: timeout}
}

// Answer produces a reply for the user's question given the current weather
// and plant list. Remote-call errors never propagate to the caller.
func (a *AssistantResponder) Answer(ctx context.Context, question string, snapshot *entities.WeatherSnapshot, plants []entities.Plant) string {
	if greetings[strings.ToLower(strings.TrimSpace(question))] {
		return greetingReply
	}

	if a.provider != nil {
		reply, err := a.generate(ctx, question, snapshot, plants)
		if err != nil {
			log.Printf("Remote assistant unavailable, using fallback: %v", err)
		} else {
			return reply
		}
	}

	return a.fallbackAnswer(question, snapshot, plants)
}

func (a *AssistantResponder) generate(ctx context.Context, question string, snapshot *entities.WeatherSnapshot, plants []entities.Plant) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.provider.Generate(ctx, buildPrompt(question, snapshot, plants))
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if len(reply) <= minUsefulReplyLen {
		return "", fmt.Errorf("model reply too short (%d chars)", len(reply))
	}
	return reply, nil
}

// buildPrompt embeds the current weather (or explicit unknowns) and the
// user's plant names alongside the verbatim question.
func buildPrompt(question string, snapshot *entities.WeatherSnapshot, plants []entities.Plant) string {
	temperature := "unknown"
	description := "unknown conditions"
	if snapshot != nil {
		temperature = fmt.Sprintf("%.0f", snapshot.TemperatureC)
		description = snapshot.Description
	}

	names := make([]string, 0, len(plants))
	for _, plant := range plants {
		names = append(names, plant.Name)
	}
	garden := "no plants yet"
	if len(names) > 0 {
		garden = strings.Join(names, ", ")
	}

	return fmt.Sprintf("Current weather is %s°C and %s.\nUser's garden has: %s.\nBased on this, answer the following question clearly and helpfully:\n\n%s",
		temperature, description, garden, question)
}

// fallbackAnswer is the deterministic tier: ordered keyword rules over the
// lower-cased question, then a generic status summary. Never fails, no I/O.
func (a *AssistantResponder) fallbackAnswer(question string, snapshot *entities.WeatherSnapshot, plants []entities.Plant) string {
	lower := strings.ToLower(question)
	temperature := 25.0
	if snapshot != nil {
		temperature = snapshot.TemperatureC
	}

	if strings.Contains(lower, "sweet") && (strings.Contains(lower, "grow") || strings.Contains(lower, "eat")) {
		return fmt.Sprintf("You can grow strawberries, cherry tomatoes, or sugar snap peas in this weather (%.0f°C).", temperature)
	}

	if strings.Contains(lower, "summer") && strings.Contains(lower, "plant") {
		return fmt.Sprintf("Try tomatoes, peppers, cucumbers, and basil for summer planting in %.0f°C weather.", temperature)
	}

	if strings.Contains(lower, "overwater") {
		return "Yellowing leaves and soggy soil are signs of overwatering. Let the soil dry before watering again."
	}

	return fmt.Sprintf("Your weather is %.0f°C. You have %d plants. Ask about planting, watering, or care tips!", temperature, len(plants))
}
