package factory

import (
	"fmt"
	"strings"

	"loan-marketplace-be/pkg/extraction"
	"loan-marketplace-be/pkg/extraction/gemini"
	"loan-marketplace-be/pkg/extraction/ollama"
)

// NewExtractionProvider builds the configured backend. "gemini" selects the
// hosted model, "ollama" the local one.
func NewExtractionProvider(providerName, modelName, ollamaBaseURL, geminiApiKey string) (extraction.Provider, error) {
	switch strings.ToLower(providerName) {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but GEMINI_API_KEY is empty")
		}
		return gemini.NewGeminiProvider(geminiApiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown extraction provider: %s", providerName)
	}
}
