package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/clipsmith/clipsmith-go/internal/domain"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
)

// MM:SS with an optional third minute digit for transcripts past 99 minutes
var timestampPattern = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

// rawClip mirrors the schema's clip object. Required fields are pointers so
// absence is distinguishable from a zero value.
type rawClip struct {
	ClipID                 *string  `json:"clip_id"`
	StartTime              *string  `json:"start_time"`
	EndTime                *string  `json:"end_time"`
	Duration               *string  `json:"duration"`
	ViralScore             *float64 `json:"viral_score"`
	Category               []string `json:"category"`
	Reason                 *string  `json:"reason"`
	OnScreenHook           *string  `json:"on_screen_hook"`
	VideoTitle             *string  `json:"video_title"`
	Tags                   []string `json:"tags"`
	Platform               *string  `json:"platform"`
	RecommendedAspectRatio *string  `json:"recommended_aspect_ratio"`
	MonetizationRisk       *string  `json:"monetization_risk"`
}

type rawResult struct {
	Summary *string    `json:"summary"`
	Clips   *[]rawClip `json:"clips"`
}

// NormalizeResult parses the raw payload from the generation call into the
// canonical AnalysisResult. Structural invalidity (bad JSON, missing summary
// or clips, any clip missing a required field) fails with MalformedResult;
// nothing partial is ever returned. Out-of-contract values that are still
// structurally valid (scores outside [7,10], unknown risk labels, inverted
// timestamps, duplicate clip IDs) are preserved and reported as quality
// flags, never dropped or coerced.
func NormalizeResult(raw string) (*domain.AnalysisResult, []domain.QualityFlag, error) {
	cleaned := stripCodeFences(raw)

	var parsed rawResult
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, nil, apperrors.NewMalformedResultError("response is not valid JSON", err)
	}

	if parsed.Summary == nil {
		return nil, nil, apperrors.NewMalformedResultError("response is missing required field: summary", nil)
	}
	if parsed.Clips == nil {
		return nil, nil, apperrors.NewMalformedResultError("response is missing required field: clips", nil)
	}

	clips := make([]domain.ClipMetadata, 0, len(*parsed.Clips))
	var flags []domain.QualityFlag
	seen := make(map[string]bool, len(*parsed.Clips))

	for i, rc := range *parsed.Clips {
		clip, err := normalizeClip(i, rc)
		if err != nil {
			return nil, nil, err
		}

		flags = append(flags, inspectClip(clip)...)

		if seen[clip.ClipID] {
			flags = append(flags, domain.QualityFlag{
				ClipID: clip.ClipID,
				Kind:   domain.FlagDuplicateClipID,
				Detail: "clip_id already used earlier in this result",
			})
		}
		seen[clip.ClipID] = true

		clips = append(clips, clip)
	}

	return &domain.AnalysisResult{
		Clips:   clips,
		Summary: *parsed.Summary,
	}, flags, nil
}

func normalizeClip(index int, rc rawClip) (domain.ClipMetadata, error) {
	missing := func(field string) error {
		return apperrors.NewMalformedResultError(
			fmt.Sprintf("clip %d is missing required field: %s", index, field), nil)
	}

	switch {
	case rc.ClipID == nil:
		return domain.ClipMetadata{}, missing("clip_id")
	case rc.StartTime == nil:
		return domain.ClipMetadata{}, missing("start_time")
	case rc.EndTime == nil:
		return domain.ClipMetadata{}, missing("end_time")
	case rc.ViralScore == nil:
		return domain.ClipMetadata{}, missing("viral_score")
	case rc.OnScreenHook == nil:
		return domain.ClipMetadata{}, missing("on_screen_hook")
	case rc.VideoTitle == nil:
		return domain.ClipMetadata{}, missing("video_title")
	case rc.MonetizationRisk == nil:
		return domain.ClipMetadata{}, missing("monetization_risk")
	}

	clip := domain.ClipMetadata{
		ClipID:                 *rc.ClipID,
		StartTime:              *rc.StartTime,
		EndTime:                *rc.EndTime,
		ViralScore:             *rc.ViralScore,
		Category:               []string{},
		OnScreenHook:           *rc.OnScreenHook,
		VideoTitle:             *rc.VideoTitle,
		Tags:                   []string{},
		RecommendedAspectRatio: domain.RecommendedAspectRatio,
		MonetizationRisk:       domain.MonetizationRisk(*rc.MonetizationRisk),
	}

	// Optional fields default to empty values, mirroring the schema's
	// required/optional split exactly.
	if rc.Duration != nil {
		clip.Duration = *rc.Duration
	}
	if rc.Category != nil {
		clip.Category = rc.Category
	}
	if rc.Reason != nil {
		clip.Reason = *rc.Reason
	}
	if rc.Tags != nil {
		clip.Tags = rc.Tags
	}
	if rc.Platform != nil {
		clip.Platform = *rc.Platform
	}
	if rc.RecommendedAspectRatio != nil {
		clip.RecommendedAspectRatio = *rc.RecommendedAspectRatio
	}

	return clip, nil
}

// inspectClip surfaces contract violations the generation step was trusted
// to prevent. The clip passes through untouched either way.
func inspectClip(clip domain.ClipMetadata) []domain.QualityFlag {
	var flags []domain.QualityFlag

	flag := func(kind domain.FlagKind, detail string) {
		flags = append(flags, domain.QualityFlag{ClipID: clip.ClipID, Kind: kind, Detail: detail})
	}

	if clip.ViralScore < 7 || clip.ViralScore > 10 {
		flag(domain.FlagScoreOutOfRange,
			fmt.Sprintf("viral_score %.1f outside expected [7,10]", clip.ViralScore))
	}

	if !clip.MonetizationRisk.IsValid() {
		flag(domain.FlagUnknownRisk,
			fmt.Sprintf("monetization_risk %q not in {safe, needs_censor, not_recommended}", clip.MonetizationRisk))
	}

	startOK := timestampPattern.MatchString(clip.StartTime)
	endOK := timestampPattern.MatchString(clip.EndTime)
	if !startOK {
		flag(domain.FlagTimestampFormat, fmt.Sprintf("start_time %q is not MM:SS", clip.StartTime))
	}
	if !endOK {
		flag(domain.FlagTimestampFormat, fmt.Sprintf("end_time %q is not MM:SS", clip.EndTime))
	}
	if startOK && endOK {
		if timestampSeconds(clip.EndTime) <= timestampSeconds(clip.StartTime) {
			flag(domain.FlagTimestampOrder,
				fmt.Sprintf("end_time %s is not after start_time %s", clip.EndTime, clip.StartTime))
		}
	}

	if len(strings.Fields(clip.OnScreenHook)) > 6 {
		flag(domain.FlagHookTooLong, fmt.Sprintf("on_screen_hook %q exceeds 6 words", clip.OnScreenHook))
	}

	if clip.RecommendedAspectRatio != domain.RecommendedAspectRatio {
		flag(domain.FlagAspectRatioOther,
			fmt.Sprintf("recommended_aspect_ratio %q is not %s", clip.RecommendedAspectRatio, domain.RecommendedAspectRatio))
	}

	return flags
}

func timestampSeconds(ts string) int {
	parts := strings.SplitN(ts, ":", 2)
	minutes, _ := strconv.Atoi(parts[0])
	seconds, _ := strconv.Atoi(parts[1])
	return minutes*60 + seconds
}

// stripCodeFences removes a surrounding markdown fence some providers wrap
// around JSON-mode output.
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}
