package service

import (
	"context"

	"github.com/clipsmith/clipsmith-go/internal/constants"
	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/prompt"
	"github.com/clipsmith/clipsmith-go/internal/service/ai"
	"go.uber.org/zap"
)

// AnalyzerService runs the analysis pipeline: settings + transcript →
// prompt/schema → one generation call → normalized result. It holds no
// mutable state between runs; invoking it again immediately after a prior
// run settles is always safe.
type AnalyzerService struct {
	generator ai.Generator
	guidance  map[domain.Platform]string
	logger    *zap.Logger
}

// AnalysisOutcome bundles the validated result with its quality flags and
// the provenance of the generation call.
type AnalysisOutcome struct {
	Result   *domain.AnalysisResult `json:"result"`
	Flags    []domain.QualityFlag   `json:"flags,omitempty"`
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
}

func NewAnalyzerService(generator ai.Generator, guidance map[domain.Platform]string, logger *zap.Logger) *AnalyzerService {
	return &AnalyzerService{
		generator: generator,
		guidance:  guidance,
		logger:    logger,
	}
}

// Analyze performs one complete analysis run. Generation and parsing
// failures propagate unmodified; there is no fallback value and no partial
// result. Blank-transcript rejection is the caller's duty.
func (s *AnalyzerService) Analyze(ctx context.Context, transcript string, settings domain.AnalysisSettings) (*AnalysisOutcome, error) {
	if len(transcript) > constants.AIInputLimits.MaxTranscriptLength {
		s.logger.Warn("Transcript truncated to input limit",
			zap.Int("original_length", len(transcript)),
			zap.Int("limit", constants.AIInputLimits.MaxTranscriptLength),
		)
		transcript = transcript[:constants.AIInputLimits.MaxTranscriptLength]
	}

	promptText := prompt.BuildAnalysisPrompt(prompt.AnalysisPromptVars{
		Settings:         settings,
		Transcript:       transcript,
		PlatformGuidance: s.guidance[settings.Platform],
	})

	s.logger.Info("Starting analysis run",
		zap.String("provider", s.generator.Provider()),
		zap.String("model", s.generator.Model()),
		zap.String("platform", settings.Platform.String()),
		zap.String("clip_length", settings.ClipLength.String()),
		zap.Int("transcript_length", len(transcript)),
	)

	genCtx, cancel := context.WithTimeout(ctx, constants.AnalysisConfig.RequestTimeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, ai.GenerateRequest{
		SystemInstruction: prompt.SystemInstruction,
		Prompt:            promptText,
		Schema:            prompt.ResponseSchema(),
		Temperature:       constants.AnalysisConfig.Temperature,
		MaxOutputTokens:   constants.AnalysisConfig.MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	result, flags, err := NormalizeResult(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Analysis run completed",
		zap.Int("clips", len(result.Clips)),
		zap.Int("quality_flags", len(flags)),
	)
	for _, f := range flags {
		s.logger.Warn("Out-of-contract clip data",
			zap.String("clip_id", f.ClipID),
			zap.String("kind", string(f.Kind)),
			zap.String("detail", f.Detail),
		)
	}

	return &AnalysisOutcome{
		Result:   result,
		Flags:    flags,
		Provider: s.generator.Provider(),
		Model:    s.generator.Model(),
	}, nil
}
