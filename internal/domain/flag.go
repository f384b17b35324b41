package domain

import "fmt"

type FlagKind string

const (
	FlagScoreOutOfRange  FlagKind = "score_out_of_range"
	FlagUnknownRisk      FlagKind = "unknown_risk_label"
	FlagDuplicateClipID  FlagKind = "duplicate_clip_id"
	FlagTimestampOrder   FlagKind = "end_not_after_start"
	FlagTimestampFormat  FlagKind = "timestamp_not_mmss"
	FlagHookTooLong      FlagKind = "hook_exceeds_word_limit"
	FlagAspectRatioOther FlagKind = "unexpected_aspect_ratio"
)

// QualityFlag marks a clip that arrived outside the generation contract.
// Flagged clips are preserved in the result, never dropped or coerced; the
// flag tells the caller what to double-check before publishing.
type QualityFlag struct {
	ClipID string   `json:"clip_id"`
	Kind   FlagKind `json:"kind"`
	Detail string   `json:"detail"`
}

func (f QualityFlag) String() string {
	return fmt.Sprintf("[%s] clip %s: %s", f.Kind, f.ClipID, f.Detail)
}
