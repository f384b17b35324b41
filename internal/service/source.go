package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/clipsmith/clipsmith-go/internal/constants"
	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/service/cache"
	apperrors "github.com/clipsmith/clipsmith-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// SourceService resolves optional metadata about the configured source URL
// through the YouTube Data API. Read-only, API-key access; purely an
// enrichment for run records and display, never required by the pipeline.
type SourceService struct {
	service *youtube.Service
	cache   *cache.CacheService
	logger  *zap.Logger
}

// NewSourceService creates the lookup service. The cache is optional.
func NewSourceService(apiKey string, cacheSvc *cache.CacheService, logger *zap.Logger) (*SourceService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	ctx := context.Background()
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &SourceService{
		service: svc,
		cache:   cacheSvc,
		logger:  logger,
	}, nil
}

// Lookup resolves title/channel/duration for a YouTube source URL. Returns
// nil without error when the URL is not recognizably a YouTube video.
func (s *SourceService) Lookup(ctx context.Context, sourceURL string) (*domain.SourceVideo, error) {
	videoID := ExtractVideoID(sourceURL)
	if videoID == "" {
		return nil, nil
	}

	cacheKey := "source:" + videoID
	if s.cache != nil {
		var cached domain.SourceVideo
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			s.logger.Debug("Source metadata cache hit", zap.String("video_id", videoID))
			return &cached, nil
		}
	}

	call := s.service.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID).Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return nil, apperrors.NewServiceError("YouTube lookup failed", "source", "lookup", err)
	}

	if len(resp.Items) == 0 {
		s.logger.Warn("Source video not found", zap.String("video_id", videoID))
		return nil, nil
	}

	item := resp.Items[0]
	video := &domain.SourceVideo{
		VideoID:  videoID,
		Title:    item.Snippet.Title,
		Channel:  item.Snippet.ChannelTitle,
		Duration: formatISODuration(item.ContentDetails.Duration),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, video, constants.CacheTTL.SourceMetadata)
	}

	return video, nil
}

// ExtractVideoID pulls the video ID out of the common YouTube URL shapes
// (watch?v=, youtu.be/, shorts/). Empty for anything else.
func ExtractVideoID(sourceURL string) string {
	u, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok {
			return strings.SplitN(rest, "/", 2)[0]
		}
	case "youtu.be":
		return strings.TrimPrefix(u.Path, "/")
	}

	return ""
}

// formatISODuration renders an ISO-8601 duration (PT1H2M3S) as H:MM:SS.
func formatISODuration(iso string) string {
	d, err := parseISODuration(iso)
	if err != nil {
		return iso
	}

	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func parseISODuration(iso string) (time.Duration, error) {
	rest, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		return 0, fmt.Errorf("not an ISO duration: %q", iso)
	}

	var d time.Duration
	num := ""
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M' || r == 'S':
			if num == "" {
				return 0, fmt.Errorf("malformed ISO duration: %q", iso)
			}
			n, err := time.ParseDuration(num + unitSuffix(r))
			if err != nil {
				return 0, err
			}
			d += n
			num = ""
		default:
			return 0, fmt.Errorf("malformed ISO duration: %q", iso)
		}
	}

	return d, nil
}

func unitSuffix(r rune) string {
	switch r {
	case 'H':
		return "h"
	case 'M':
		return "m"
	default:
		return "s"
	}
}
