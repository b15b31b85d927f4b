// Package extractor extracts structured meal planning preferences from
// free-form user requests using an LLM with a JSON response schema.
// When the model call fails or returns something unusable it falls
// back to the deterministic keyword extraction.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/planner"
)

const systemPrompt = `Extract meal planning preferences from the user's request.

Return JSON with:
- dietary_preferences: dietary tags mentioned (vegetarian, vegan, gluten-free, low-carb); empty if none
- num_recipes: how many recipes the user asked for; 0 if unspecified
- budget: the budget in dollars; 0 if unspecified

Only extract what the user actually said. Do not invent preferences.`

// responseSchema constrains the model output to the preference record shape.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"dietary_preferences": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"num_recipes": {Type: genai.TypeInteger},
		"budget":      {Type: genai.TypeNumber},
	},
	Required: []string{"dietary_preferences", "num_recipes", "budget"},
}

// Extractor extracts preferences via an LLM.
type Extractor struct {
	llm    model.LLM
	logger *logging.Logger
}

// New creates an Extractor backed by the given model.
func New(llm model.LLM) *Extractor {
	return &Extractor{
		llm:    llm,
		logger: logging.GetLogger("extractor"),
	}
}

type rawPreferences struct {
	DietaryPreferences []string `json:"dietary_preferences"`
	NumRecipes         int      `json:"num_recipes"`
	Budget             float64  `json:"budget"`
}

// Extract returns the preferences found in the request text. It never
// fails: any model or decoding error falls back to keyword extraction.
func (e *Extractor) Extract(ctx context.Context, request string) planner.PreferenceRecord {
	prefs, err := e.extractLLM(ctx, request)
	if err != nil {
		e.logger.WarnWithFields("falling back to keyword extraction",
			logging.Field("error", err.Error()),
		)
		return planner.ExtractPreferences(request)
	}
	return prefs
}

func (e *Extractor) extractLLM(ctx context.Context, request string) (planner.PreferenceRecord, error) {
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			{
				Role:  "user",
				Parts: []*genai.Part{{Text: request}},
			},
		},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	var text strings.Builder
	for resp, err := range e.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return planner.PreferenceRecord{}, fmt.Errorf("model call failed: %w", err)
		}
		if resp == nil || resp.Content == nil {
			continue
		}
		for _, part := range resp.Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}

	var raw rawPreferences
	if err := json.Unmarshal([]byte(strings.TrimSpace(text.String())), &raw); err != nil {
		return planner.PreferenceRecord{}, fmt.Errorf("failed to decode model output: %w", err)
	}

	prefs := planner.PreferenceRecord{
		NumRecipes: raw.NumRecipes,
		Budget:     raw.Budget,
	}
	for _, s := range raw.DietaryPreferences {
		tag, err := catalog.ParseTag(s)
		if err != nil {
			// Tags outside the catalog vocabulary are dropped.
			e.logger.DebugWithFields("ignoring unknown tag",
				logging.Field("tag", s),
			)
			continue
		}
		prefs.Tags = append(prefs.Tags, tag)
	}

	return prefs.Normalize(), nil
}
