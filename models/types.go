package models

// Dimensions are the pixel dimensions requested by the caller
type Dimensions struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// VideoDetails describes the advertisement to generate
type VideoDetails struct {
	ProductName          string     `json:"product_name" binding:"required"`
	Tagline              string     `json:"tagline" binding:"required"`
	BrandPalette         []string   `json:"brand_palette" binding:"required"`
	Dimensions           Dimensions `json:"dimensions" binding:"required"`
	Duration             int        `json:"duration" binding:"required"`
	CTAText              string     `json:"cta_text" binding:"required"`
	LogoURL              string     `json:"logo_url" binding:"required"`
	ProductVideoURL      string     `json:"product_video_url" binding:"required"`
	AdditionalGuidelines string     `json:"additional_guidelines,omitempty"`
	VisualStyle          string     `json:"visual_style,omitempty"`
}

// RubricCriterion is one caller-supplied scoring criterion
type RubricCriterion struct {
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// GenerationRequest is the inbound payload. Immutable once accepted.
type GenerationRequest struct {
	VideoDetails  VideoDetails               `json:"video_details" binding:"required"`
	ScoringRubric map[string]RubricCriterion `json:"scoring_rubric" binding:"required"`
	Email         string                     `json:"email,omitempty"`
}

// SegmentPrompt is the structured prompt pair for one segment, extracted
// from the dialogue model's free-text reply
type SegmentPrompt struct {
	Keyframe string `json:"keyframe_prompt"`
	Motion   string `json:"motion_prompt"`
}

// TimeWindow is the on-screen interval of one text overlay
type TimeWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Position is a normalized screen position, percentages on both axes
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OverlaySpec is one timed, positioned text layer on the final video
type OverlaySpec struct {
	Text     string     `json:"text"`
	Duration TimeWindow `json:"text_duration"`
	Position Position   `json:"position"`
	Font     string     `json:"font"`
	FontSize string     `json:"font_size"`
	Color    string     `json:"color"`
}

// OverlayPlan is the full set of overlays for one video, in rendering order.
// Overlays may overlap in time.
type OverlayPlan struct {
	Texts []OverlaySpec `json:"texts"`
}

// Scoring mirrors the rubric: one score and one justification per criterion
type Scoring struct {
	Scores         map[string]float64 `json:"scores"`
	Justifications map[string]string  `json:"justifications"`
	TotalScore     float64            `json:"total_score"`
}

// Resolution is the output resolution reported to the caller
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata is derived by probing the rendered output file
type Metadata struct {
	FileSizeMB      float64    `json:"file_size_mb"`
	DurationSeconds int        `json:"duration_seconds"`
	Resolution      Resolution `json:"resolution"`
}

// VideoResponse is the persisted, immutable outcome of one request
type VideoResponse struct {
	Status     string   `json:"status"`
	VideoURL   string   `json:"video_url"`
	Scoring    Scoring  `json:"scoring"`
	Metadata   Metadata `json:"metadata"`
	Identifier string   `json:"identifier"`
}
