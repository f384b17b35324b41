package domain

type Platform string

const (
	PlatformTikTok Platform = "TikTok"
	PlatformReels  Platform = "Reels"
	PlatformShorts Platform = "Shorts"
)

func (p Platform) String() string {
	return string(p)
}

func (p Platform) IsValid() bool {
	switch p {
	case PlatformTikTok, PlatformReels, PlatformShorts:
		return true
	default:
		return false
	}
}

type ClipLength string

const (
	ClipLength15s ClipLength = "15s"
	ClipLength30s ClipLength = "30s"
	ClipLength60s ClipLength = "60s"
)

func (l ClipLength) String() string {
	return string(l)
}

func (l ClipLength) IsValid() bool {
	switch l {
	case ClipLength15s, ClipLength30s, ClipLength60s:
		return true
	default:
		return false
	}
}

// AnalysisSettings holds the user-chosen parameters for one analysis run.
// Immutable per run; passed by value into the pipeline. The settings are
// soft guidance for the model, not hard filters on the output.
type AnalysisSettings struct {
	Platform   Platform   `json:"platform"`
	ClipLength ClipLength `json:"clip_length"`
	Niche      string     `json:"niche"`
	Language   string     `json:"language"`
	SourceURL  string     `json:"source_url,omitempty"`
}

// DefaultSettings mirrors the form defaults the analysis surface presents.
func DefaultSettings() AnalysisSettings {
	return AnalysisSettings{
		Platform:   PlatformTikTok,
		ClipLength: ClipLength30s,
		Niche:      "Podcast",
		Language:   "English",
	}
}
