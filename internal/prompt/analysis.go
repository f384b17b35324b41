package prompt

import (
	"fmt"
	"strings"

	"github.com/clipsmith/clipsmith-go/internal/domain"
)

// SystemInstruction carries the scoring rubric and output requirements the
// model must apply. The >=7 gate and the hook word limit are enforced here,
// at generation time; the normalizer preserves whatever arrives and flags
// out-of-contract values instead of re-filtering.
const SystemInstruction = `You are an elite viral content analyst, short-form video editor, and creator growth strategist.
Your job is to analyze long-form transcripts and automatically extract highly viral short-form clips.

VIRAL SCORING SYSTEM
Score each detected moment from 1-10 using a weighted sum of:
- Shock / Surprise (Weight: 3)
- Humor (Weight: 3)
- Relatability (Weight: 2)
- Emotional Intensity (Weight: 2)

Only output moments with score >= 7.

MONETIZATION & SAFETY CHECK
Flag clips containing: excessive profanity, graphic content, sexual content.
Label each clip exactly one of: 'safe', 'needs_censor', or 'not_recommended'
('not_recommended' is the most severe, 'safe' the least).

For each clip, provide:
1. Exact timestamps in MM:SS format
2. Viral score and category
3. On-screen hook (max 6 words, emotion-first, max 1 emoji)
4. Platform-optimized video title (5-10 words, no hashtags, curiosity driven)
5. A short psychological reason why this goes viral.

Respond with a single JSON object matching the provided schema. No surrounding prose.`

// AnalysisPromptVars holds the variables interpolated into the user prompt.
type AnalysisPromptVars struct {
	Settings         domain.AnalysisSettings
	Transcript       string
	PlatformGuidance string
}

// BuildAnalysisPrompt builds the user prompt for one analysis run. The
// settings are communicated as preferences; the output schema does not
// enforce them.
func BuildAnalysisPrompt(vars AnalysisPromptVars) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following transcript.\n\n")
	sb.WriteString("Settings:\n")
	sb.WriteString(fmt.Sprintf("- Target Platform: %s\n", vars.Settings.Platform))
	sb.WriteString(fmt.Sprintf("- Preferred Length: %s\n", vars.Settings.ClipLength))
	sb.WriteString(fmt.Sprintf("- Niche: %s\n", vars.Settings.Niche))
	sb.WriteString(fmt.Sprintf("- Language: %s\n", vars.Settings.Language))

	if guidance := strings.TrimSpace(vars.PlatformGuidance); guidance != "" {
		sb.WriteString(fmt.Sprintf("\nPlatform guidance: %s\n", guidance))
	}

	sb.WriteString("\nTRANSCRIPT:\n")
	sb.WriteString(vars.Transcript)

	return sb.String()
}
