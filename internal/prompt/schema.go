package prompt

import "google.golang.org/genai"

// RequiredClipFields is the minimum per-clip field set the schema enforces.
// Everything else on the clip object is requested but optional; the result
// normalizer must tolerate its absence.
var RequiredClipFields = []string{
	"clip_id",
	"start_time",
	"end_time",
	"viral_score",
	"on_screen_hook",
	"video_title",
	"monetization_risk",
}

// ResponseSchema builds the structured-output schema applied to the
// generation call: a single object {summary, clips[]} with the required/
// optional split above.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A brief 1-sentence summary of the overall transcript content.",
			},
			"clips": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"clip_id":    {Type: genai.TypeString},
						"start_time": {Type: genai.TypeString, Description: "Format MM:SS"},
						"end_time":   {Type: genai.TypeString, Description: "Format MM:SS"},
						"duration":   {Type: genai.TypeString},
						"viral_score": {
							Type: genai.TypeNumber,
						},
						"category": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"reason": {
							Type:        genai.TypeString,
							Description: "Why this goes viral",
						},
						"on_screen_hook": {Type: genai.TypeString},
						"video_title":    {Type: genai.TypeString},
						"tags": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"platform": {Type: genai.TypeString},
						"recommended_aspect_ratio": {
							Type: genai.TypeString,
							Enum: []string{"9:16"},
						},
						"monetization_risk": {
							Type: genai.TypeString,
							Enum: []string{"safe", "needs_censor", "not_recommended"},
						},
					},
					Required: RequiredClipFields,
				},
			},
		},
		Required: []string{"clips", "summary"},
	}
}
