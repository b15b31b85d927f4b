// Package model provides LLM adapters for the meal planning agents.
package model

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// NewGemini creates a Gemini-backed model.LLM. The API key is taken
// from the argument, falling back to the GOOGLE_API_KEY environment
// variable.
func NewGemini(ctx context.Context, modelName, apiKey string) (model.LLM, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key: set --api-key or GOOGLE_API_KEY")
	}

	m, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini model %s: %w", modelName, err)
	}
	return m, nil
}
