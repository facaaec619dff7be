package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"videocreativegen/models"
	"videocreativegen/utils"
)

// fontFiles maps the fixed font enumeration to bundled typefaces
var fontFiles = map[string]string{
	"normal":  "inter.ttf",
	"bold":    "bebas.ttf",
	"stylish": "playfair.ttf",
}

// fontHeightRatios maps the fixed size enumeration to a fraction of the
// frame height
var fontHeightRatios = map[string]float64{
	"small":  0.03,
	"medium": 0.05,
	"large":  0.08,
}

// AssemblerService concatenates segment clips, applies the brand watermark,
// and renders the validated overlay plan onto the final timeline
type AssemblerService struct {
	fontDir          string
	watermarkOpacity float64
	watermarkPadding int
}

// NewAssemblerService creates a new assembler
func NewAssemblerService(fontDir string, watermarkOpacity float64, watermarkPadding int) *AssemblerService {
	return &AssemblerService{
		fontDir:          fontDir,
		watermarkOpacity: watermarkOpacity,
		watermarkPadding: watermarkPadding,
	}
}

// MergeAndWatermark concatenates the ordered clips losslessly and overlays
// the semi-transparent logo, sized to one-eighth of the frame width and
// anchored bottom-right, for the full duration
func (as *AssemblerService) MergeAndWatermark(clipPaths []string, logoPath, scratchDir string) (string, error) {
	if len(clipPaths) == 0 {
		return "", fmt.Errorf("no clips to merge")
	}

	mergedPath := filepath.Join(scratchDir, "output", "merged.mp4")
	if err := utils.ConcatClips(clipPaths, mergedPath); err != nil {
		return "", fmt.Errorf("failed to merge clips: %w", err)
	}

	watermarkedPath := filepath.Join(scratchDir, "output", "merged_watermarked.mp4")
	if err := utils.ApplyWatermark(mergedPath, logoPath, watermarkedPath, as.watermarkOpacity, as.watermarkPadding); err != nil {
		return "", fmt.Errorf("failed to apply watermark: %w", err)
	}
	return watermarkedPath, nil
}

// RenderOverlays composites every overlay in the plan simultaneously onto
// one timeline. Placement correctness is the planner's responsibility; this
// step only realizes the instructions.
func (as *AssemblerService) RenderOverlays(videoPath string, plan *models.OverlayPlan, scratchDir string) (string, error) {
	_, height, err := utils.GetVideoResolution(videoPath)
	if err != nil {
		return "", err
	}

	filters := make([]string, 0, len(plan.Texts))
	for i, spec := range plan.Texts {
		filter, err := as.overlayFilter(&spec, height)
		if err != nil {
			return "", fmt.Errorf("overlay %d: %w", i, err)
		}
		filters = append(filters, filter)
	}

	outputPath := filepath.Join(scratchDir, "output", "final.mp4")
	if err := utils.RenderDrawtextFilters(videoPath, filters, outputPath); err != nil {
		return "", fmt.Errorf("failed to render overlays: %w", err)
	}
	return outputPath, nil
}

// overlayFilter builds the drawtext filter for one validated OverlaySpec
func (as *AssemblerService) overlayFilter(spec *models.OverlaySpec, frameHeight int) (string, error) {
	fontFile, ok := fontFiles[strings.ToLower(strings.TrimSpace(spec.Font))]
	if !ok {
		return "", fmt.Errorf("unknown font %q", spec.Font)
	}

	ratio, ok := fontHeightRatios[strings.ToLower(strings.TrimSpace(spec.FontSize))]
	if !ok {
		return "", fmt.Errorf("unknown font size %q", spec.FontSize)
	}

	r, g, b, err := ParseRGBColor(spec.Color)
	if err != nil {
		return "", err
	}
	sr, sg, sb := StrokeColor(r, g, b)

	return utils.BuildDrawtextFilter(
		spec.Text,
		filepath.Join(as.fontDir, fontFile),
		int(float64(frameHeight)*ratio),
		FFmpegColor(r, g, b),
		FFmpegColor(sr, sg, sb),
		spec.Position.X, spec.Position.Y,
		spec.Duration.Start, spec.Duration.End,
	), nil
}
