package adapter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clipsmith/clipsmith-go/internal/constants"
	"github.com/clipsmith/clipsmith-go/internal/domain"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
)

// ChartPoints maps a validated result 1:1, preserving order, into
// chart-ready points. Total function: inputs are already validated, so it
// never fails.
func ChartPoints(result *domain.AnalysisResult) []domain.ChartDataPoint {
	if result == nil {
		return []domain.ChartDataPoint{}
	}

	points := make([]domain.ChartDataPoint, len(result.Clips))
	for i := range result.Clips {
		clip := &result.Clips[i]
		points[i] = domain.ChartDataPoint{
			Time:     clip.StartTime,
			Score:    clip.ViralScore,
			Category: clip.PrimaryCategory(),
		}
	}

	return points
}

// DownloadCommand builds the shell command an external downloader would run
// to extract this clip. Timestamps are passed verbatim; yt-dlp accepts the
// MM:SS form directly. With no source URL configured the operation refuses
// rather than emit a command referencing an empty URL.
func DownloadCommand(clip *domain.ClipMetadata, sourceURL string) (string, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return "", apperrors.NewUnavailableDownloadTargetError(clip.ClipID)
	}

	return fmt.Sprintf(`%s --download-sections "*%s-%s" "%s" -o "%s_%s.mp4" --force-keyframes-at-cuts`,
		constants.Downloader.Binary,
		clip.StartTime,
		clip.EndTime,
		sourceURL,
		constants.Downloader.OutputPrefix,
		clip.ClipID,
	), nil
}

// DownloadCommands builds the command for every clip in the result, keyed by
// clip_id. Returns nil when no source URL is configured.
func DownloadCommands(result *domain.AnalysisResult, sourceURL string) map[string]string {
	if result == nil || strings.TrimSpace(sourceURL) == "" {
		return nil
	}

	commands := make(map[string]string, len(result.Clips))
	for i := range result.Clips {
		cmd, err := DownloadCommand(&result.Clips[i], sourceURL)
		if err != nil {
			continue
		}
		commands[result.Clips[i].ClipID] = cmd
	}

	return commands
}

// ExportClipMetadata serializes the full clip record as human-readable
// structured text: lossless and order-preserving across every field,
// including the optional ones. Intended for clipboard-style export; the
// side effect belongs to the caller.
func ExportClipMetadata(clip *domain.ClipMetadata) (string, error) {
	data, err := json.MarshalIndent(clip, "", "  ")
	if err != nil {
		return "", apperrors.NewServiceError("failed to export clip metadata", "adapter", "export", err)
	}
	return string(data), nil
}
