package ai

import (
	"context"
	"strings"

	"github.com/clipsmith/clipsmith-go/internal/constants"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const openaiProvider = "OpenAI"

// OpenAIGenerator is the alternative provider behind the same Generator
// contract. It is selected by configuration, never invoked as a fallback
// after a failed call elsewhere; the one-request contract holds for every
// provider. The output schema cannot be attached natively here, so the
// system message demands schema-shaped JSON and the normalizer does the
// structural enforcement.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIGenerator(apiKey, model string, logger *zap.Logger) *OpenAIGenerator {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = constants.ModelDefaults.OpenAI
	}

	return &OpenAIGenerator{
		client: &client,
		model:  model,
		logger: logger,
	}
}

func (g *OpenAIGenerator) Provider() string { return openaiProvider }
func (g *OpenAIGenerator) Model() string    { return g.model }

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	maxTokens := req.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = constants.AnalysisConfig.MaxOutputTokens
	}

	system := req.SystemInstruction
	if system != "" {
		system += "\n\n"
	}
	system += "You must respond with valid JSON only. Do not include any text outside the JSON object."

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(req.Prompt),
	}

	g.logger.Debug("Generating with OpenAI",
		zap.String("model", g.model),
		zap.Float32("temperature", req.Temperature),
		zap.Int("prompt_length", len(req.Prompt)),
	)

	isGPT5 := strings.HasPrefix(g.model, "gpt-5")

	params := openai.ChatCompletionNewParams{
		Model:               chatModel(g.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
	}

	if !isGPT5 {
		params.Temperature = openai.Float(float64(req.Temperature))
		params.TopP = openai.Float(float64(constants.AnalysisConfig.TopP))
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		g.logger.Error("OpenAI generation failed", zap.Error(err))
		return "", apperrors.NewTransportError(openaiProvider, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewEmptyResponseError(openaiProvider)
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewEmptyResponseError(openaiProvider)
	}

	g.logger.Debug("OpenAI response received",
		zap.Int("length", len(text)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return text, nil
}

func chatModel(name string) openai.ChatModel {
	switch name {
	case "gpt-5-mini":
		return openai.ChatModelGPT5Mini
	case "gpt-5":
		return openai.ChatModelGPT5
	case "gpt-5-nano":
		return openai.ChatModelGPT5Nano
	case "gpt-4.1":
		return openai.ChatModelGPT4_1
	case "gpt-4.1-mini":
		return openai.ChatModelGPT4_1Mini
	case "gpt-4.1-nano":
		return openai.ChatModelGPT4_1Nano
	case "gpt-4o":
		return openai.ChatModelGPT4o
	case "gpt-4o-mini":
		return openai.ChatModelGPT4oMini
	default:
		return openai.ChatModelGPT4_1
	}
}
