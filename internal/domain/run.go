package domain

import "time"

// AnalysisRun is the persisted record of one completed analysis, stored by
// the run-history repository when Postgres is configured. The core pipeline
// itself holds no state between runs.
type AnalysisRun struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Settings  AnalysisSettings `json:"settings"`
	Provider  string           `json:"provider"`
	Model     string           `json:"model"`
	Summary   string           `json:"summary"`
	ClipCount int              `json:"clip_count"`
	Result    *AnalysisResult  `json:"result,omitempty"`
	Flags     []QualityFlag    `json:"flags,omitempty"`
}

// SourceVideo is optional metadata about the configured source URL, resolved
// through the YouTube Data API when available.
type SourceVideo struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Duration string `json:"duration"`
}
