package services

import (
	"context"
	"fmt"
	"strings"

	"videocreativegen/models"
)

// overlayFonts is the fixed font enumeration, keyed lowercase
var overlayFonts = map[string]bool{
	"normal":  true,
	"bold":    true,
	"stylish": true,
}

// overlaySizes is the fixed size enumeration, keyed lowercase
var overlaySizes = map[string]bool{
	"small":  true,
	"medium": true,
	"large":  true,
}

// planExtractor parses free-text replies into typed overlay plans
type planExtractor interface {
	ExtractOverlayPlan(ctx context.Context, freeText string) (*models.OverlayPlan, error)
}

// OverlayService derives the validated overlay plan for a finished video
// with one follow-up dialogue turn plus a schema-constrained extraction
type OverlayService struct {
	extractor planExtractor
}

// NewOverlayService creates a new overlay planner
func NewOverlayService(extractor planExtractor) *OverlayService {
	return &OverlayService{extractor: extractor}
}

// Plan sends the finished video into the ongoing dialogue session, requests
// the overlay plan, extracts it into typed form, and validates it. The plan
// is only requested after the full merged-and-watermarked video exists.
func (ov *OverlayService) Plan(ctx context.Context, session promptDialogue, videoPath string, details *models.VideoDetails) (*models.OverlayPlan, error) {
	if err := session.AppendFileContext(ctx, videoPath); err != nil {
		return nil, wrapStage(StageGeneration, err)
	}

	reply, err := session.RequestPrompt(ctx, overlayInstruction(details))
	if err != nil {
		return nil, wrapStage(StageGeneration, err)
	}

	plan, err := ov.extractor.ExtractOverlayPlan(ctx, reply)
	if err != nil {
		return nil, wrapStage(StageExtraction, err)
	}

	if err := ValidateOverlayPlan(plan); err != nil {
		return nil, wrapStage(StageExtraction, err)
	}
	return plan, nil
}

// ValidateOverlayPlan rejects a plan containing any entry outside the fixed
// enumerations or coordinate/time bounds. A single violation rejects the
// whole plan before rendering.
func ValidateOverlayPlan(plan *models.OverlayPlan) error {
	for i, spec := range plan.Texts {
		if strings.TrimSpace(spec.Text) == "" {
			return fmt.Errorf("overlay %d has empty text", i)
		}
		if spec.Duration.End <= spec.Duration.Start {
			return fmt.Errorf("overlay %d has non-positive duration: %g-%g", i, spec.Duration.Start, spec.Duration.End)
		}
		if spec.Duration.Start < 0 {
			return fmt.Errorf("overlay %d starts before 0: %g", i, spec.Duration.Start)
		}
		if spec.Position.X < 0 || spec.Position.X > 100 {
			return fmt.Errorf("overlay %d x position out of range: %g", i, spec.Position.X)
		}
		if spec.Position.Y < 0 || spec.Position.Y > 100 {
			return fmt.Errorf("overlay %d y position out of range: %g", i, spec.Position.Y)
		}
		if !overlayFonts[strings.ToLower(strings.TrimSpace(spec.Font))] {
			return fmt.Errorf("overlay %d has unknown font: %q", i, spec.Font)
		}
		if !overlaySizes[strings.ToLower(strings.TrimSpace(spec.FontSize))] {
			return fmt.Errorf("overlay %d has unknown font size: %q", i, spec.FontSize)
		}
		if _, _, _, err := ParseRGBColor(spec.Color); err != nil {
			return fmt.Errorf("overlay %d: %w", i, err)
		}
	}
	return nil
}
