package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/clipsmith/clipsmith-go/internal/constants"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const geminiProvider = "Gemini"

// GeminiGenerator generates schema-constrained JSON through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = constants.ModelDefaults.Gemini
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *GeminiGenerator) Provider() string { return geminiProvider }
func (g *GeminiGenerator) Model() string    { return g.model }

// Generate performs the single outbound generation call with the response
// schema attached. Failures propagate to the caller unhandled.
func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	temperature := req.Temperature
	topP := constants.AnalysisConfig.TopP
	maxTokens := int32(req.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = int32(constants.AnalysisConfig.MaxOutputTokens)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		TopP:             &topP,
		MaxOutputTokens:  maxTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}

	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: req.SystemInstruction},
			},
		}
	}

	g.logger.Debug("Generating with Gemini",
		zap.String("model", g.model),
		zap.Float32("temperature", temperature),
		zap.Int("prompt_length", len(req.Prompt)),
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: req.Prompt},
			},
		},
	}, config)

	if err != nil {
		g.logger.Error("Gemini generation failed", zap.Error(err))
		return "", apperrors.NewTransportError(geminiProvider, err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewEmptyResponseError(geminiProvider)
	}

	g.logger.Debug("Gemini response received", zap.Int("length", len(text)))
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}
