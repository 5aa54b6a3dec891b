// Package huggingface provides a text-generation client for the Hugging Face
// inference API
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const defaultModelURL = "https://api-inference.huggingface.co/models/mistralai/Mixtral-8x7B-Instruct-v0.1"

// ErrNoUsableText is returned when a response parses but carries no
// recognizable generated text
var ErrNoUsableText = errors.New("no usable text in model response")

// HuggingFaceService calls the hosted inference endpoint. The response body's
// shape is not guaranteed; see ExtractGeneratedText for the accepted forms.
type HuggingFaceService struct {
	modelURL string
	apiKey   string
	client   *http.Client
}

// NewHuggingFaceService creates a new inference client. A missing API key is
// reported as an error so the caller can run without a remote tier.
func NewHuggingFaceService(modelURL, apiKey string) (*HuggingFaceService, error) {
	if apiKey == "" {
		return nil, errors.New("HUGGINGFACE_API_KEY environment variable not set")
	}
	if modelURL == "" {
		modelURL = defaultModelURL
	}
	return &HuggingFaceService{
		modelURL: modelURL,
		apiKey:   apiKey,
		client:   &http.Client{},
	}, nil
}

// Generate sends the prompt and extracts the first usable completion string
func (s *HuggingFaceService) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	res, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}

	if res.StatusCode != http.StatusOK {
		log.Printf("Hugging Face API returned status %d: %s", res.StatusCode, raw)
		return "", fmt.Errorf("inference API returned status %d", res.StatusCode)
	}

	return ExtractGeneratedText(raw)
}

// generatedTextObject is the object form of a completion
type generatedTextObject struct {
	GeneratedText string `json:"generated_text"`
}

// ExtractGeneratedText pulls the first usable string out of an inference
// response. The endpoint is known to return any of: a raw string, an array
// whose first element is a string, an object with a generated_text field, or
// an array of such objects. Unrecognized shapes resolve to ErrNoUsableText,
// never a panic.
func ExtractGeneratedText(raw []byte) (string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return usable(asString)
	}

	var asStringArray []string
	if err := json.Unmarshal(raw, &asStringArray); err == nil {
		if len(asStringArray) == 0 {
			return "", ErrNoUsableText
		}
		return usable(asStringArray[0])
	}

	var asObject generatedTextObject
	if err := json.Unmarshal(raw, &asObject); err == nil && asObject.GeneratedText != "" {
		return usable(asObject.GeneratedText)
	}

	var asObjectArray []generatedTextObject
	if err := json.Unmarshal(raw, &asObjectArray); err == nil && len(asObjectArray) > 0 {
		return usable(asObjectArray[0].GeneratedText)
	}

	return "", ErrNoUsableText
}

func usable(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoUsableText
	}
	return text, nil
}
