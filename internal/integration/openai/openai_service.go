package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// GardenReply defines the structured output from the gardening agent.
type GardenReply struct {
	Answer string `json:"answer" jsonschema_description:"Concise, practical gardening advice answering the user's question"`
	Topic  string `json:"topic" jsonschema_description:"Short topic label for the answer, e.g. watering, planting, plant-health"`
}

// GardenAdvisorService defines the interface for the OpenAI gardening agent.
type GardenAdvisorService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// gardenAdvisorImpl implements the GardenAdvisorService interface.
type gardenAdvisorImpl struct {
	client openai.Client
	schema interface{}
}

// GenerateSchema generates a JSON schema for a given type.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// NewGardenAdvisorService creates and initializes a new GardenAdvisorService.
func NewGardenAdvisorService() (GardenAdvisorService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	schema := GenerateSchema[GardenReply]()

	return &gardenAdvisorImpl{
		client: client,
		schema: schema,
	}, nil
}

const systemPrompt = `You are a professional gardening expert and plant care specialist. You help people with garden management, plant care, and growing advice.

The user's message includes their current weather conditions and the plants in their garden.

Provide helpful, practical advice about:
- Plant care and watering schedules
- Climate suitability for different plants
- Garden management tips
- Plant health and growth optimization
- Seasonal planting recommendations

Keep responses concise but informative. Always consider the current weather conditions when giving advice.

Output **strictly** in JSON.`

// Generate sends the composed prompt to the gardening agent and returns the
// answer text from its structured response.
func (s *gardenAdvisorImpl) Generate(ctx context.Context, prompt string) (string, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "garden_reply",
		Description: openai.String("Structured gardening answer with a topic label"),
		Schema:      s.schema,
		Strict:      openai.Bool(true),
	}

	respFormat := openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
	}

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: respFormat,
		Model:          openai.ChatModelGPT4o,
	})

	if err != nil {
		return "", fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return "", errors.New("received empty response from OpenAI")
	}

	var reply GardenReply
	err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &reply)
	if err != nil {
		log.Printf("Failed to unmarshal OpenAI response: %s\nRaw response: %s", err, chat.Choices[0].Message.Content)
		return "", fmt.Errorf("error unmarshalling OpenAI response: %w", err)
	}

	return reply.Answer, nil
}
