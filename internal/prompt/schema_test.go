package prompt

import (
	"strings"
	"testing"

	"github.com/clipsmith/clipsmith-go/internal/domain"
	"google.golang.org/genai"
)

func TestResponseSchemaRequiredOptionalSplit(t *testing.T) {
	schema := ResponseSchema()

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected object root, got %v", schema.Type)
	}
	for _, field := range []string{"clips", "summary"} {
		found := false
		for _, req := range schema.Required {
			if req == field {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected top-level field %s to be required", field)
		}
	}

	clips := schema.Properties["clips"]
	if clips == nil || clips.Type != genai.TypeArray || clips.Items == nil {
		t.Fatalf("clips must be an array of objects")
	}

	required := make(map[string]bool)
	for _, field := range clips.Items.Required {
		required[field] = true
	}
	for _, field := range RequiredClipFields {
		if !required[field] {
			t.Fatalf("clip field %s must be required", field)
		}
		if clips.Items.Properties[field] == nil {
			t.Fatalf("required clip field %s missing from properties", field)
		}
	}
	for _, field := range []string{"duration", "category", "reason", "tags", "platform", "recommended_aspect_ratio"} {
		if required[field] {
			t.Fatalf("clip field %s must stay optional", field)
		}
		if clips.Items.Properties[field] == nil {
			t.Fatalf("optional clip field %s missing from properties", field)
		}
	}
}

func TestResponseSchemaEnums(t *testing.T) {
	items := ResponseSchema().Properties["clips"].Items

	risk := items.Properties["monetization_risk"]
	if len(risk.Enum) != 3 {
		t.Fatalf("expected 3 risk labels, got %v", risk.Enum)
	}

	ratio := items.Properties["recommended_aspect_ratio"]
	if len(ratio.Enum) != 1 || ratio.Enum[0] != "9:16" {
		t.Fatalf("expected aspect ratio pinned to 9:16, got %v", ratio.Enum)
	}
}

func TestBuildAnalysisPromptInterpolatesSettings(t *testing.T) {
	text := BuildAnalysisPrompt(AnalysisPromptVars{
		Settings: domain.AnalysisSettings{
			Platform:   domain.PlatformShorts,
			ClipLength: domain.ClipLength15s,
			Niche:      "Comedy",
			Language:   "Japanese",
		},
		Transcript:       "hello world transcript",
		PlatformGuidance: "Shorts loves loops.",
	})

	for _, want := range []string{
		"Target Platform: Shorts",
		"Preferred Length: 15s",
		"Niche: Comedy",
		"Language: Japanese",
		"Platform guidance: Shorts loves loops.",
		"TRANSCRIPT:\nhello world transcript",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("prompt missing %q:\n%s", want, text)
		}
	}
}

func TestBuildAnalysisPromptOmitsEmptyGuidance(t *testing.T) {
	text := BuildAnalysisPrompt(AnalysisPromptVars{
		Settings:   domain.DefaultSettings(),
		Transcript: "t",
	})
	if strings.Contains(text, "Platform guidance") {
		t.Fatalf("guidance line should be omitted when empty:\n%s", text)
	}
}

func TestSystemInstructionCarriesRubric(t *testing.T) {
	for _, want := range []string{"score >= 7", "needs_censor", "MM:SS", "max 6 words"} {
		if !strings.Contains(SystemInstruction, want) {
			t.Fatalf("system instruction missing %q", want)
		}
	}
}
