package services

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"google.golang.org/genai"

	"videocreativegen/models"
)

// aspectBuckets are the ratio buckets the image service understands
var aspectBuckets = []struct {
	name  string
	ratio float64
}{
	{"16:9", 16.0 / 9.0},
	{"4:3", 4.0 / 3.0},
	{"1:1", 1.0},
	{"3:4", 3.0 / 4.0},
	{"9:16", 9.0 / 16.0},
}

// AspectBucket maps requested pixel dimensions to the nearest supported
// aspect-ratio bucket
func AspectBucket(width, height int) string {
	if width <= 0 || height <= 0 {
		return "1:1"
	}

	ratio := float64(width) / float64(height)
	best := aspectBuckets[0]
	bestDelta := math.Abs(ratio - best.ratio)
	for _, bucket := range aspectBuckets[1:] {
		if delta := math.Abs(ratio - bucket.ratio); delta < bestDelta {
			best = bucket
			bestDelta = delta
		}
	}
	return best.name
}

// styleKeywords is the fixed style enumeration understood by the image
// service; free-text style names collapse onto it
var styleKeywords = map[string]string{
	"photorealistic": "photorealistic",
	"realistic":      "photorealistic",
	"cinematic":      "cinematic",
	"minimalist":     "minimalist",
	"minimal":        "minimalist",
	"vibrant":        "vibrant",
	"luxury":         "luxury",
	"elegant":        "luxury",
	"retro":          "retro",
	"vintage":        "retro",
}

// StyleKeyword maps a caller-supplied visual style onto the fixed style set
func StyleKeyword(style string) string {
	if keyword, ok := styleKeywords[strings.ToLower(strings.TrimSpace(style))]; ok {
		return keyword
	}
	return "photorealistic"
}

// KeyframeService synthesizes the first visual keyframe via the external
// image-generation service
type KeyframeService struct {
	client *genai.Client
	model  string
}

// NewKeyframeService creates a new keyframe service
func NewKeyframeService(client *genai.Client, model string) *KeyframeService {
	return &KeyframeService{client: client, model: model}
}

// Synthesize generates the keyframe image and writes it to destPath.
// Any non-success from the service aborts the request; no retry.
func (ks *KeyframeService) Synthesize(ctx context.Context, details *models.VideoDetails, destPath string) error {
	palette, err := PaletteToRGBTriples(details.BrandPalette)
	if err != nil {
		return fmt.Errorf("invalid brand palette: %w", err)
	}

	result, err := ks.client.Models.GenerateImages(ctx, ks.model,
		buildKeyframePrompt(details, palette),
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			AspectRatio:    AspectBucket(details.Dimensions.Width, details.Dimensions.Height),
		})
	if err != nil {
		return fmt.Errorf("keyframe synthesis failed: %w", err)
	}
	if len(result.GeneratedImages) == 0 || result.GeneratedImages[0].Image == nil {
		return fmt.Errorf("keyframe synthesis returned no image")
	}

	if err := os.WriteFile(destPath, result.GeneratedImages[0].Image.ImageBytes, 0644); err != nil {
		return fmt.Errorf("failed to save keyframe: %w", err)
	}
	return nil
}
