package adapter

import (
	"fmt"
	"strings"

	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/util"
)

// ResultFormatter renders analysis outcomes as terminal text.
type ResultFormatter struct {
	maxTitleLength int
}

func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{maxTitleLength: 60}
}

// FormatResult formats a full analysis result into a readable report.
func (f *ResultFormatter) FormatResult(result *domain.AnalysisResult, sourceURL string) string {
	if result == nil || len(result.Clips) == 0 {
		return "No viral clip candidates found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d clip candidate(s)\n", len(result.Clips)))
	sb.WriteString(fmt.Sprintf("Summary: %s\n", result.Summary))

	for i := range result.Clips {
		clip := &result.Clips[i]
		sb.WriteString("\n")
		sb.WriteString(f.formatClip(clip))

		if cmd, err := DownloadCommand(clip, sourceURL); err == nil {
			sb.WriteString(fmt.Sprintf("   $ %s\n", cmd))
		}
	}

	return sb.String()
}

func (f *ResultFormatter) formatClip(clip *domain.ClipMetadata) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s  [%s - %s]  score %.1f\n",
		riskMarker(clip.MonetizationRisk),
		clip.ClipID,
		clip.StartTime,
		clip.EndTime,
		clip.ViralScore,
	))
	sb.WriteString(fmt.Sprintf("   %s\n", util.TruncateString(clip.VideoTitle, f.maxTitleLength)))
	sb.WriteString(fmt.Sprintf("   Hook: %s\n", clip.OnScreenHook))

	if len(clip.Category) > 0 {
		sb.WriteString(fmt.Sprintf("   Category: %s\n", strings.Join(clip.Category, ", ")))
	}
	if clip.Reason != "" {
		sb.WriteString(fmt.Sprintf("   Why: %s\n", clip.Reason))
	}
	if len(clip.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("   Tags: %s\n", strings.Join(clip.Tags, " ")))
	}

	return sb.String()
}

// FormatFlags formats quality flags for display after the result.
func (f *ResultFormatter) FormatFlags(flags []domain.QualityFlag) string {
	if len(flags) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n%d data-quality flag(s):\n", len(flags)))
	for _, flag := range flags {
		sb.WriteString(fmt.Sprintf("  - %s\n", flag))
	}

	return sb.String()
}

func riskMarker(risk domain.MonetizationRisk) string {
	switch risk {
	case domain.RiskSafe:
		return "✅"
	case domain.RiskNeedsCensor:
		return "⚠️"
	case domain.RiskNotRecommended:
		return "⛔"
	default:
		return "❓"
	}
}
