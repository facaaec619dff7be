package services

import (
	"strings"
	"testing"

	"videocreativegen/models"
)

func testDetails() *models.VideoDetails {
	return &models.VideoDetails{
		ProductName: "Acme Cola",
		Tagline:     "Taste the future",
		CTAText:     "Buy Now",
	}
}

func TestBuildDirectorBrief(t *testing.T) {
	details := testDetails()
	details.AdditionalGuidelines = "Always show condensation on the bottle."
	brief := buildDirectorBrief(details, []string{"rgb(255, 0, 0)", "rgb(255, 255, 255)"})

	for _, want := range []string{
		"Acme Cola",
		"Taste the future",
		"Buy Now",
		"rgb(255, 0, 0), rgb(255, 255, 255)",
		"self-contained",
		"Always show condensation on the bottle.",
	} {
		if !strings.Contains(brief, want) {
			t.Errorf("brief missing %q", want)
		}
	}
}

func TestSegmentInstruction(t *testing.T) {
	details := testDetails()

	first := segmentInstruction(0, 3, details)
	if !strings.Contains(first, "segment 1 of 3") || !strings.Contains(first, "Acme Cola") {
		t.Errorf("first instruction wrong: %q", first)
	}
	if !strings.Contains(first, "hero shot") {
		t.Errorf("first instruction should reference the hero shot: %q", first)
	}

	second := segmentInstruction(1, 3, details)
	if !strings.Contains(second, "segment 2 of 3") {
		t.Errorf("second instruction wrong: %q", second)
	}
	if !strings.Contains(second, "last frame") {
		t.Errorf("subsequent instruction should reference the previous frame: %q", second)
	}
}

func TestOverlayInstruction(t *testing.T) {
	instruction := overlayInstruction(testDetails())
	for _, want := range []string{`"Acme Cola"`, `"Taste the future"`, `"Buy Now"`, "Normal/Bold/Stylish", "small/medium/large"} {
		if !strings.Contains(instruction, want) {
			t.Errorf("overlay instruction missing %q", want)
		}
	}
}

func TestBuildScoringPromptDeterministic(t *testing.T) {
	rubric := map[string]models.RubricCriterion{
		"visual_quality": {Weight: 10, Description: "sharpness"},
		"brand_fit":      {Weight: 5},
		"pacing":         {Weight: 3},
	}

	prompt := buildScoringPrompt(testDetails(), rubric)
	if !strings.Contains(prompt, "visual_quality (max 10): sharpness") {
		t.Errorf("prompt missing described criterion:\n%s", prompt)
	}

	// Map iteration order must not leak into the prompt
	for i := 0; i < 10; i++ {
		if buildScoringPrompt(testDetails(), rubric) != prompt {
			t.Fatal("scoring prompt is not deterministic")
		}
	}

	// Sorted order: brand_fit before pacing before visual_quality
	if strings.Index(prompt, "brand_fit") > strings.Index(prompt, "pacing") {
		t.Error("criteria are not sorted")
	}
}
