package services

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"videocreativegen/models"
)

// ScoringService evaluates the finished advertisement against the caller's
// rubric with a single opaque model call. The scoring heuristics live in
// the external model, not here.
type ScoringService struct {
	client *genai.Client
	model  string
}

// NewScoringService creates a new rubric scorer
func NewScoringService(client *genai.Client, model string) *ScoringService {
	return &ScoringService{client: client, model: model}
}

// scoringSchema builds the response schema dynamically from the rubric, so
// caller-supplied criteria need no fixed shape here
func scoringSchema(criteria []string) *genai.Schema {
	scoreProps := make(map[string]*genai.Schema, len(criteria))
	justificationProps := make(map[string]*genai.Schema, len(criteria))
	for _, name := range criteria {
		scoreProps[name] = &genai.Schema{Type: genai.TypeNumber}
		justificationProps[name] = &genai.Schema{Type: genai.TypeString}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"scores":         {Type: genai.TypeObject, Properties: scoreProps, Required: criteria},
			"justifications": {Type: genai.TypeObject, Properties: justificationProps, Required: criteria},
			"total_score":    {Type: genai.TypeNumber},
		},
		Required: []string{"scores", "justifications", "total_score"},
	}
}

// Score uploads the finished asset independently of the dialogue session
// and returns per-criterion scores, justifications, and the aggregate total
func (ss *ScoringService) Score(ctx context.Context, videoPath string, details *models.VideoDetails, rubric map[string]models.RubricCriterion) (*models.Scoring, error) {
	if len(rubric) == 0 {
		return nil, fmt.Errorf("scoring rubric is empty")
	}

	file, err := uploadFileAndWait(ctx, ss.client, videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset for scoring: %w", err)
	}

	criteria := sortedCriteria(rubric)
	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{FileData: &genai.FileData{FileURI: file.URI, MIMEType: file.MIMEType}},
			genai.NewPartFromText(buildScoringPrompt(details, rubric)),
		},
	}

	result, err := ss.client.Models.GenerateContent(ctx, ss.model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   scoringSchema(criteria),
		})
	if err != nil {
		return nil, fmt.Errorf("scoring call failed: %w", err)
	}

	var scoring models.Scoring
	if err := json.Unmarshal([]byte(result.Text()), &scoring); err != nil {
		return nil, fmt.Errorf("scoring reply does not match schema: %w", err)
	}

	for _, name := range criteria {
		if _, ok := scoring.Scores[name]; !ok {
			return nil, fmt.Errorf("scoring reply missing criterion %q", name)
		}
	}
	return &scoring, nil
}
