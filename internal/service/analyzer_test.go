package service

import (
	"context"
	"strings"
	"testing"

	"github.com/clipsmith/clipsmith-go/internal/constants"
	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/service/ai"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	response string
	err      error
	requests []ai.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req ai.GenerateRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) Provider() string { return "Fake" }
func (f *fakeGenerator) Model() string    { return "fake-model" }

func testGuidance() map[domain.Platform]string {
	return map[domain.Platform]string{
		domain.PlatformTikTok: "TikTok guidance text",
	}
}

func TestAnalyzeMakesExactlyOneGenerationCall(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"summary": "ok", "clips": [` + minimalClip + `]}`,
	}
	svc := NewAnalyzerService(gen, testGuidance(), zap.NewNop())

	outcome, err := svc.Analyze(context.Background(), "some transcript", domain.DefaultSettings())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(gen.requests) != 1 {
		t.Fatalf("expected exactly one generation call, got %d", len(gen.requests))
	}
	if outcome.Provider != "Fake" || outcome.Model != "fake-model" {
		t.Fatalf("unexpected provenance: %s/%s", outcome.Provider, outcome.Model)
	}
	if len(outcome.Result.Clips) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(outcome.Result.Clips))
	}
}

func TestAnalyzeRequestCarriesSettingsAndRubric(t *testing.T) {
	gen := &fakeGenerator{response: `{"summary": "ok", "clips": []}`}
	svc := NewAnalyzerService(gen, testGuidance(), zap.NewNop())

	settings := domain.AnalysisSettings{
		Platform:   domain.PlatformTikTok,
		ClipLength: domain.ClipLength60s,
		Niche:      "Gaming",
		Language:   "Korean",
	}
	if _, err := svc.Analyze(context.Background(), "the transcript body", settings); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	req := gen.requests[0]
	if req.Schema == nil {
		t.Fatalf("expected a response schema on the request")
	}
	if req.Temperature != constants.AnalysisConfig.Temperature {
		t.Fatalf("expected temperature %v, got %v", constants.AnalysisConfig.Temperature, req.Temperature)
	}
	if !strings.Contains(req.SystemInstruction, "score >= 7") {
		t.Fatalf("system instruction is missing the scoring gate")
	}
	for _, want := range []string{"TikTok", "60s", "Gaming", "Korean", "TikTok guidance text", "the transcript body"} {
		if !strings.Contains(req.Prompt, want) {
			t.Fatalf("prompt is missing %q:\n%s", want, req.Prompt)
		}
	}
}

func TestAnalyzePropagatesGenerationError(t *testing.T) {
	gen := &fakeGenerator{err: apperrors.NewTransportError("Fake", nil)}
	svc := NewAnalyzerService(gen, testGuidance(), zap.NewNop())

	_, err := svc.Analyze(context.Background(), "some transcript", domain.DefaultSettings())
	if err == nil {
		t.Fatalf("expected error to propagate")
	}
	if apperrors.Code(err) != apperrors.CodeTransport {
		t.Fatalf("expected transport code, got %s", apperrors.Code(err))
	}
}

func TestAnalyzePropagatesMalformedResult(t *testing.T) {
	gen := &fakeGenerator{response: "not json at all"}
	svc := NewAnalyzerService(gen, testGuidance(), zap.NewNop())

	_, err := svc.Analyze(context.Background(), "some transcript", domain.DefaultSettings())
	if apperrors.Code(err) != apperrors.CodeMalformedResult {
		t.Fatalf("expected malformed-result code, got %v", err)
	}
	if len(gen.requests) != 1 {
		t.Fatalf("a parse failure must not trigger a retry, got %d calls", len(gen.requests))
	}
}

func TestAnalyzeTruncatesOversizedTranscript(t *testing.T) {
	gen := &fakeGenerator{response: `{"summary": "ok", "clips": []}`}
	svc := NewAnalyzerService(gen, testGuidance(), zap.NewNop())

	oversized := strings.Repeat("a", constants.AIInputLimits.MaxTranscriptLength+100)
	if _, err := svc.Analyze(context.Background(), oversized, domain.DefaultSettings()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(gen.requests[0].Prompt) > constants.AIInputLimits.MaxTranscriptLength+500 {
		t.Fatalf("transcript was not truncated: prompt length %d", len(gen.requests[0].Prompt))
	}
}
