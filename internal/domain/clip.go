package domain

type MonetizationRisk string

const (
	RiskSafe           MonetizationRisk = "safe"
	RiskNeedsCensor    MonetizationRisk = "needs_censor"
	RiskNotRecommended MonetizationRisk = "not_recommended"
)

func (r MonetizationRisk) String() string {
	return string(r)
}

func (r MonetizationRisk) IsValid() bool {
	switch r {
	case RiskSafe, RiskNeedsCensor, RiskNotRecommended:
		return true
	default:
		return false
	}
}

// Severity orders the risk labels: safe < needs_censor < not_recommended.
// Unknown labels rank above everything the enum covers.
func (r MonetizationRisk) Severity() int {
	switch r {
	case RiskSafe:
		return 0
	case RiskNeedsCensor:
		return 1
	case RiskNotRecommended:
		return 2
	default:
		return 3
	}
}

// RecommendedAspectRatio is the only aspect ratio the output schema permits.
const RecommendedAspectRatio = "9:16"

// ClipMetadata is one validated clip candidate. Created only by the result
// normalizer from raw model output and never mutated afterwards. The field
// order is the canonical export order.
type ClipMetadata struct {
	ClipID                 string           `json:"clip_id"`
	StartTime              string           `json:"start_time"` // MM:SS
	EndTime                string           `json:"end_time"`   // MM:SS
	Duration               string           `json:"duration"`
	ViralScore             float64          `json:"viral_score"`
	Category               []string         `json:"category"`
	Reason                 string           `json:"reason"`
	OnScreenHook           string           `json:"on_screen_hook"`
	VideoTitle             string           `json:"video_title"`
	Tags                   []string         `json:"tags"`
	Platform               string           `json:"platform"`
	RecommendedAspectRatio string           `json:"recommended_aspect_ratio"`
	MonetizationRisk       MonetizationRisk `json:"monetization_risk"`
}

// PrimaryCategory returns the first category tag, or the fallback label when
// the model supplied none.
func (c *ClipMetadata) PrimaryCategory() string {
	if c == nil || len(c.Category) == 0 {
		return "Viral"
	}
	return c.Category[0]
}

// AnalysisResult is the canonical outcome of one completed analysis run.
// Clip order is the model's output order, treated as relevance order.
// Superseded wholesale by the next run; no incremental merge.
type AnalysisResult struct {
	Clips   []ClipMetadata `json:"clips"`
	Summary string         `json:"summary"`
}

// ChartDataPoint is derived display data, one per clip, same order as clips.
type ChartDataPoint struct {
	Time     string  `json:"time"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}
