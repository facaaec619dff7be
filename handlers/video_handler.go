package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"videocreativegen/config"
	"videocreativegen/models"
	"videocreativegen/services"
	"videocreativegen/storage"
	"videocreativegen/utils"
)

// generationPipeline runs one request end to end
type generationPipeline interface {
	Run(ctx context.Context, requestID string, req *models.GenerationRequest) (*services.PipelineResult, error)
}

// videoScorer evaluates a rendered video against the caller's rubric
type videoScorer interface {
	Score(ctx context.Context, videoPath string, details *models.VideoDetails, rubric map[string]models.RubricCriterion) (*models.Scoring, error)
}

// responseStore persists and looks up finished responses
type responseStore interface {
	Insert(response *models.VideoResponse) error
	GetByIdentifier(identifier string) (*models.VideoResponse, error)
}

// VideoHandler handles advertisement generation and lookup requests
type VideoHandler struct {
	cfg      *config.Config
	pipeline generationPipeline
	scorer   videoScorer
	store    responseStore
	probe    func(videoPath string) (*models.Metadata, error)
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(cfg *config.Config, pipeline generationPipeline, scorer videoScorer, store responseStore) *VideoHandler {
	return &VideoHandler{
		cfg:      cfg,
		pipeline: pipeline,
		scorer:   scorer,
		store:    store,
		probe:    services.ProbeMetadata,
	}
}

// ScoreVideo handles POST /score-video: it runs the generation pipeline to
// completion, scores the result against the caller's rubric, persists the
// outcome, and returns it synchronously
func (h *VideoHandler) ScoreVideo(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: " + err.Error()})
		return
	}
	if err := h.validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	requestID := uuid.New().String()
	log.Printf("[request %s] accepted: product=%q duration=%ds", requestID, req.VideoDetails.ProductName, req.VideoDetails.Duration)

	result, err := h.pipeline.Run(c.Request.Context(), requestID, &req)
	if err != nil {
		log.Printf("[request %s] FAILED: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	scoring, err := h.scorer.Score(c.Request.Context(), result.LocalPath, &req.VideoDetails, req.ScoringRubric)
	if err != nil {
		log.Printf("[request %s] scoring FAILED: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	metadata, err := h.probe(result.LocalPath)
	if err != nil {
		log.Printf("[request %s] metadata probe FAILED: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	// The probed resolution is informational; the response reports the
	// caller's requested dimensions
	metadata.Resolution = models.Resolution{
		Width:  req.VideoDetails.Dimensions.Width,
		Height: req.VideoDetails.Dimensions.Height,
	}

	response := models.VideoResponse{
		Status:     "success",
		VideoURL:   result.VideoURL,
		Scoring:    *scoring,
		Metadata:   *metadata,
		Identifier: uuid.New().String(),
	}
	if err := h.store.Insert(&response); err != nil {
		stageErr := &services.StageError{Stage: services.StagePersistence, Err: err}
		log.Printf("[request %s] FAILED: %v", requestID, stageErr)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": stageErr.Error()})
		return
	}

	if req.Email != "" {
		h.notify(req.Email, response.Identifier)
	}

	log.Printf("[request %s] done: identifier=%s url=%s", requestID, response.Identifier, response.VideoURL)
	c.JSON(http.StatusOK, response)
}

// GetScoredVideo handles GET /score-video/:identifier
func (h *VideoHandler) GetScoredVideo(c *gin.Context) {
	identifier := c.Param("identifier")

	response, err := h.store.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Video response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// validate applies the request rules binding tags cannot express
func (h *VideoHandler) validate(req *models.GenerationRequest) error {
	details := &req.VideoDetails
	if details.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if details.Duration > h.cfg.MaxDuration {
		return fmt.Errorf("duration too long (max %d seconds)", h.cfg.MaxDuration)
	}
	if details.Dimensions.Width <= 0 || details.Dimensions.Height <= 0 {
		return fmt.Errorf("dimensions must be positive")
	}
	if len(details.BrandPalette) == 0 {
		return fmt.Errorf("brand_palette is required")
	}
	for _, color := range details.BrandPalette {
		if _, _, _, err := services.HexToRGB(color); err != nil {
			return err
		}
	}
	if len(req.ScoringRubric) == 0 {
		return fmt.Errorf("scoring_rubric is required")
	}
	return nil
}

// notify sends the best-effort completion mail; failures are logged, never
// surfaced to the caller
func (h *VideoHandler) notify(email, identifier string) {
	body := fmt.Sprintf("Thank you for using VideoCreativeGen.\n"+
		"Your requested video has been generated and scored.\n"+
		"Access it now at %s/%s.\n", h.cfg.FrontendURL, identifier)

	err := utils.SendMail(h.cfg.SMTPHost, h.cfg.SMTPPort, h.cfg.SMTPUser, h.cfg.SMTPPass,
		h.cfg.MailFrom, email, "Your Requested Video is Ready", body)
	if err != nil {
		log.Printf("notification to %s failed: %v", email, err)
	}
}
