package adapter

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/clipsmith/clipsmith-go/internal/domain"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Summary: "Two strong moments.",
		Clips: []domain.ClipMetadata{
			{
				ClipID:                 "c1",
				StartTime:              "01:10",
				EndTime:                "01:40",
				ViralScore:             9.2,
				Category:               []string{"Humor", "Shock"},
				OnScreenHook:           "He actually said it",
				VideoTitle:             "The confession nobody expected to hear",
				Tags:                   []string{"#podcast"},
				RecommendedAspectRatio: domain.RecommendedAspectRatio,
				MonetizationRisk:       domain.RiskSafe,
			},
			{
				ClipID:                 "c2",
				StartTime:              "05:02",
				EndTime:                "05:32",
				ViralScore:             7.5,
				Category:               []string{},
				OnScreenHook:           "Wait for it",
				VideoTitle:             "This reaction speaks for itself",
				Tags:                   []string{},
				RecommendedAspectRatio: domain.RecommendedAspectRatio,
				MonetizationRisk:       domain.RiskNeedsCensor,
			},
		},
	}
}

func TestDownloadCommandExactFormat(t *testing.T) {
	clip := &domain.ClipMetadata{ClipID: "c1", StartTime: "01:10", EndTime: "01:40"}

	cmd, err := DownloadCommand(clip, "https://example.com/v")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := `yt-dlp --download-sections "*01:10-01:40" "https://example.com/v" -o "viral_clip_c1.mp4" --force-keyframes-at-cuts`
	if cmd != want {
		t.Fatalf("command mismatch:\n got %s\nwant %s", cmd, want)
	}
}

func TestDownloadCommandWithoutSourceURL(t *testing.T) {
	clip := &domain.ClipMetadata{ClipID: "c1", StartTime: "01:10", EndTime: "01:40"}

	_, err := DownloadCommand(clip, "   ")
	if err == nil {
		t.Fatalf("expected error without source URL")
	}
	var target *apperrors.UnavailableDownloadTargetError
	if !errors.As(err, &target) {
		t.Fatalf("expected UnavailableDownloadTargetError, got %T", err)
	}
	if apperrors.Code(err) != apperrors.CodeDownloadTarget {
		t.Fatalf("unexpected code %s", apperrors.Code(err))
	}
}

func TestDownloadCommandsKeyedByClipID(t *testing.T) {
	commands := DownloadCommands(sampleResult(), "https://example.com/v")
	if len(commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(commands))
	}
	for _, id := range []string{"c1", "c2"} {
		if commands[id] == "" {
			t.Fatalf("missing command for %s", id)
		}
	}

	if DownloadCommands(sampleResult(), "") != nil {
		t.Fatalf("expected nil map without source URL")
	}
}

func TestChartPointsPreserveOrderAndCount(t *testing.T) {
	result := sampleResult()
	points := ChartPoints(result)

	if len(points) != len(result.Clips) {
		t.Fatalf("expected %d points, got %d", len(result.Clips), len(points))
	}
	if points[0].Time != "01:10" || points[0].Score != 9.2 || points[0].Category != "Humor" {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	// A clip with no categories falls back to the generic label.
	if points[1].Category != "Viral" {
		t.Fatalf("expected fallback category, got %q", points[1].Category)
	}

	if got := ChartPoints(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for nil result, got %v", got)
	}
}

func TestExportClipMetadataIsLossless(t *testing.T) {
	original := sampleResult().Clips[0]

	payload, err := ExportClipMetadata(&original)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var restored domain.ClipMetadata
	if err := json.Unmarshal([]byte(payload), &restored); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(original, restored) {
		t.Fatalf("export lost information:\n got %+v\nwant %+v", restored, original)
	}
}
