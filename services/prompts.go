package services

import (
	"fmt"
	"sort"
	"strings"

	"videocreativegen/models"
)

// buildDirectorBrief is the system instruction for the dialogue session. It
// establishes the two rules the whole chain depends on: prompts must be
// self-contained (the downstream video service is stateless per call) and
// must always use the full product name.
func buildDirectorBrief(details *models.VideoDetails, palette []string) string {
	var sb strings.Builder

	sb.WriteString("# Creative Director's Brief: Sequential Advertisement Generation\n\n")
	sb.WriteString("You are a creative director writing prompts for a premium video advertisement, ")
	sb.WriteString("one segment at a time, reviewing the last frame of the previous segment before each new one.\n\n")

	sb.WriteString("## Brand\n")
	fmt.Fprintf(&sb, "Product: %s\nTagline: %s\nCall to action: %s\n", details.ProductName, details.Tagline, details.CTAText)
	fmt.Fprintf(&sb, "Brand palette (use descriptive color names derived from these values): %s\n\n", strings.Join(palette, ", "))

	sb.WriteString("## Critical Rules\n")
	sb.WriteString("1. Stateless prompts: each prompt must be completely self-contained. ")
	sb.WriteString("Never reference previous frames or states (no \"continues\", \"as before\", \"the same\"). ")
	sb.WriteString("The artist creating each segment has no knowledge of other segments.\n")
	fmt.Fprintf(&sb, "2. Always use the complete product name \"%s\". Never \"the product\", \"the bottle\", \"it\".\n", details.ProductName)
	sb.WriteString("3. Use only colors from the brand palette, applied purposefully and consistently across segments.\n")

	if details.AdditionalGuidelines != "" {
		fmt.Fprintf(&sb, "\n## Additional Guidelines\n%s\n", details.AdditionalGuidelines)
	}

	sb.WriteString("\n## Outputs\n")
	sb.WriteString("When asked for a segment, provide that segment's keyframe prompt and motion prompt. ")
	sb.WriteString("Text overlay suggestions are provided only after reviewing the complete final video, never mid-chain.\n")

	return sb.String()
}

// buildKeyframePrompt describes the first visual keyframe for the image
// synthesis service
func buildKeyframePrompt(details *models.VideoDetails, palette []string) string {
	style := StyleKeyword(details.VisualStyle)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Premium %s product advertisement hero shot of %s.", style, details.ProductName)
	fmt.Fprintf(&sb, " Tagline mood: %s.", details.Tagline)
	fmt.Fprintf(&sb, " Brand colors: %s.", strings.Join(palette, ", "))
	sb.WriteString(" Cinematic lighting, professional composition, clean background, no text.")
	if details.AdditionalGuidelines != "" {
		fmt.Fprintf(&sb, " %s", details.AdditionalGuidelines)
	}
	return sb.String()
}

// segmentInstruction is the dialogue turn requesting one segment's prompts
func segmentInstruction(index, total int, details *models.VideoDetails) string {
	if index == 0 {
		return fmt.Sprintf(
			"Write the keyframe prompt and motion prompt for segment 1 of %d of the %s advertisement. "+
				"The segment opens on the hero shot you have been shown.",
			total, details.ProductName)
	}
	return fmt.Sprintf(
		"You have just been shown the last frame and the full clip of segment %d. "+
			"Write the keyframe prompt and motion prompt for segment %d of %d, "+
			"continuing the narrative while keeping each prompt fully self-contained.",
		index, index+1, total)
}

// overlayInstruction is the single post-assembly dialogue turn asking for
// the structured overlay plan
func overlayInstruction(details *models.VideoDetails) string {
	return fmt.Sprintf(
		"Provide the post-production text overlays for the final video you have just been shown. The details are:\n"+
			"\"product_name\": %q,\n\"tagline\": %q,\n\"cta_text\": %q\n"+
			"For each overlay give: exact text, start-end time in decimal seconds, position as (X%%, Y%%), "+
			"font (Normal/Bold/Stylish), color as rgb(r,g,b), and font size (small/medium/large). "+
			"Place text over calm, high-contrast regions away from the product.",
		details.ProductName, details.Tagline, details.CTAText)
}

// buildScoringPrompt lists the caller's rubric criteria for the scorer.
// Criteria are emitted in sorted order so the prompt is deterministic.
func buildScoringPrompt(details *models.VideoDetails, rubric map[string]models.RubricCriterion) string {
	names := sortedCriteria(rubric)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score this advertisement for %s (tagline: %s, call to action: %s) against each criterion below. ",
		details.ProductName, details.Tagline, details.CTAText)
	sb.WriteString("For every criterion return a numeric score between 0 and the criterion's weight, ")
	sb.WriteString("a one-paragraph justification, and an overall total_score aggregating the criteria.\n\nCriteria:\n")
	for _, name := range names {
		criterion := rubric[name]
		fmt.Fprintf(&sb, "- %s (max %g)", name, criterion.Weight)
		if criterion.Description != "" {
			fmt.Fprintf(&sb, ": %s", criterion.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func sortedCriteria(rubric map[string]models.RubricCriterion) []string {
	names := make([]string, 0, len(rubric))
	for name := range rubric {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
