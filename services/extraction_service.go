package services

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"videocreativegen/models"
)

// ExtractionService turns free-text model replies into strictly-typed data
// via schema-constrained generation calls. This boundary is the last point
// where malformed upstream text becomes typed data.
type ExtractionService struct {
	client *genai.Client
	model  string
}

// NewExtractionService creates a new extraction service
func NewExtractionService(client *genai.Client, model string) *ExtractionService {
	return &ExtractionService{client: client, model: model}
}

var segmentPromptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"keyframe_prompt": {Type: genai.TypeString},
		"motion_prompt":   {Type: genai.TypeString},
	},
	Required: []string{"keyframe_prompt", "motion_prompt"},
}

var overlayPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"texts": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text": {Type: genai.TypeString},
					"text_duration": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start": {Type: genai.TypeNumber},
							"end":   {Type: genai.TypeNumber},
						},
						Required: []string{"start", "end"},
					},
					"position": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"x": {Type: genai.TypeNumber},
							"y": {Type: genai.TypeNumber},
						},
						Required: []string{"x", "y"},
					},
					"font":      {Type: genai.TypeString},
					"font_size": {Type: genai.TypeString},
					"color":     {Type: genai.TypeString},
				},
				Required: []string{"text", "text_duration", "position", "font", "font_size", "color"},
			},
		},
	},
	Required: []string{"texts"},
}

const extractionInstruction = "From the given text, extract the required data for the given JSON schema. " +
	"For positions the text might contain %, but provide only the number as float. " +
	"Choose font_size from 'small', 'medium', 'large'. Choose font from 'Normal', 'Bold', 'Stylish'. " +
	"Provide colors as rgb(r,g,b)."

// extract runs one schema-constrained call and unmarshals the JSON reply
func (es *ExtractionService) extract(ctx context.Context, freeText string, schema *genai.Schema, out interface{}) error {
	result, err := es.client.Models.GenerateContent(ctx, es.model,
		[]*genai.Content{genai.NewContentFromText(freeText, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(extractionInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    schema,
		})
	if err != nil {
		return fmt.Errorf("extraction call failed: %w", err)
	}

	reply := result.Text()
	if reply == "" {
		return fmt.Errorf("extraction returned an empty reply")
	}
	if err := json.Unmarshal([]byte(reply), out); err != nil {
		return fmt.Errorf("extraction reply does not match schema: %w", err)
	}
	return nil
}

// ExtractSegmentPrompt parses a free-text segment reply into a structured
// prompt pair
func (es *ExtractionService) ExtractSegmentPrompt(ctx context.Context, freeText string) (*models.SegmentPrompt, error) {
	var prompt models.SegmentPrompt
	if err := es.extract(ctx, freeText, segmentPromptSchema, &prompt); err != nil {
		return nil, err
	}
	if prompt.Motion == "" {
		return nil, fmt.Errorf("extracted segment prompt has no motion prompt")
	}
	return &prompt, nil
}

// ExtractOverlayPlan parses a free-text overlay reply into a typed plan
func (es *ExtractionService) ExtractOverlayPlan(ctx context.Context, freeText string) (*models.OverlayPlan, error) {
	var plan models.OverlayPlan
	if err := es.extract(ctx, freeText, overlayPlanSchema, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
