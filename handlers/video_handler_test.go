package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"videocreativegen/config"
	"videocreativegen/models"
	"videocreativegen/services"
	"videocreativegen/storage"
)

func testConfig() *config.Config {
	return &config.Config{MaxDuration: 60, FrontendURL: "https://app.example.com"}
}

func validRequest() *models.GenerationRequest {
	return &models.GenerationRequest{
		VideoDetails: models.VideoDetails{
			ProductName:  "Acme Cola",
			Tagline:      "Taste the future",
			BrandPalette: []string{"#FF0000", "#FFFFFF"},
			Dimensions:   models.Dimensions{Width: 1920, Height: 1080},
			Duration:     15,
			CTAText:      "Buy Now",
			LogoURL:      "https://cdn.example.com/logo.png",
		},
		ScoringRubric: map[string]models.RubricCriterion{
			"visual_quality": {Weight: 0.5, Description: "sharpness and lighting"},
		},
	}
}

func TestValidate(t *testing.T) {
	h := &VideoHandler{cfg: testConfig()}

	if err := h.validate(validRequest()); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.GenerationRequest)
	}{
		{"zero duration", func(r *models.GenerationRequest) { r.VideoDetails.Duration = 0 }},
		{"duration over limit", func(r *models.GenerationRequest) { r.VideoDetails.Duration = 61 }},
		{"zero width", func(r *models.GenerationRequest) { r.VideoDetails.Dimensions.Width = 0 }},
		{"negative height", func(r *models.GenerationRequest) { r.VideoDetails.Dimensions.Height = -1 }},
		{"empty palette", func(r *models.GenerationRequest) { r.VideoDetails.BrandPalette = nil }},
		{"bad palette color", func(r *models.GenerationRequest) { r.VideoDetails.BrandPalette = []string{"red"} }},
		{"empty rubric", func(r *models.GenerationRequest) { r.ScoringRubric = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if err := h.validate(req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

type fakePipeline struct {
	result *services.PipelineResult
	err    error
}

func (f *fakePipeline) Run(_ context.Context, _ string, _ *models.GenerationRequest) (*services.PipelineResult, error) {
	return f.result, f.err
}

type fakeScorer struct {
	scoring *models.Scoring
}

func (f *fakeScorer) Score(_ context.Context, _ string, _ *models.VideoDetails, _ map[string]models.RubricCriterion) (*models.Scoring, error) {
	return f.scoring, nil
}

type fakeStore struct {
	insertErr error
	inserted  []*models.VideoResponse
}

func (f *fakeStore) Insert(response *models.VideoResponse) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, response)
	return nil
}

func (f *fakeStore) GetByIdentifier(identifier string) (*models.VideoResponse, error) {
	return nil, storage.ErrNotFound
}

func newScoreRouter(pipeline *fakePipeline, store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewVideoHandler(testConfig(), pipeline, &fakeScorer{
		scoring: &models.Scoring{
			Scores:     map[string]float64{"visual_quality": 8},
			TotalScore: 8,
		},
	}, store)
	h.probe = func(string) (*models.Metadata, error) {
		return &models.Metadata{
			FileSizeMB:      10.5,
			DurationSeconds: 15,
			Resolution:      models.Resolution{Width: 1280, Height: 720},
		}, nil
	}

	router := gin.New()
	router.POST("/score-video", h.ScoreVideo)
	return router
}

func postScoreVideo(t *testing.T, router *gin.Engine, req *models.GenerationRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/score-video", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, httpReq)
	return w
}

func TestScoreVideo(t *testing.T) {
	store := &fakeStore{}
	router := newScoreRouter(&fakePipeline{
		result: &services.PipelineResult{
			LocalPath: "/scratch/output/final.mp4",
			VideoURL:  "https://res.cloudinary.com/demo/video/upload/c_fill,h_1080,w_1920/abc.mp4",
		},
	}, store)

	req := validRequest()
	req.VideoDetails.ProductVideoURL = "https://cdn.example.com/product.mp4"
	w := postScoreVideo(t, router, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got models.VideoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != "success" || got.Identifier == "" {
		t.Errorf("unexpected response: %+v", got)
	}

	// The probed resolution is replaced by the requested dimensions
	if got.Metadata.Resolution.Width != 1920 || got.Metadata.Resolution.Height != 1080 {
		t.Errorf("resolution = %+v, want requested dimensions", got.Metadata.Resolution)
	}

	if len(store.inserted) != 1 || store.inserted[0].Identifier != got.Identifier {
		t.Errorf("response was not persisted under its identifier")
	}
}

func TestScoreVideoPipelineFailure(t *testing.T) {
	router := newScoreRouter(&fakePipeline{
		err: &services.StageError{Stage: services.StageAssetFetch, Err: errors.New("download failed with status: 404")},
	}, &fakeStore{})

	req := validRequest()
	req.VideoDetails.ProductVideoURL = "https://cdn.example.com/product.mp4"
	w := postScoreVideo(t, router, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "asset_fetch failure") {
		t.Errorf("body does not attribute the stage: %s", w.Body.String())
	}
}

func TestScoreVideoPersistenceFailure(t *testing.T) {
	router := newScoreRouter(&fakePipeline{
		result: &services.PipelineResult{LocalPath: "/scratch/output/final.mp4", VideoURL: "https://example.com/v.mp4"},
	}, &fakeStore{insertErr: errors.New("disk full")})

	req := validRequest()
	req.VideoDetails.ProductVideoURL = "https://cdn.example.com/product.mp4"
	w := postScoreVideo(t, router, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "persistence failure") {
		t.Errorf("body does not attribute the stage: %s", w.Body.String())
	}
}

func newLookupRouter(t *testing.T) (*gin.Engine, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "responses.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	h := NewVideoHandler(testConfig(), nil, nil, store)
	router := gin.New()
	router.GET("/score-video/:identifier", h.GetScoredVideo)
	return router, store
}

func TestGetScoredVideo(t *testing.T) {
	router, store := newLookupRouter(t)

	stored := &models.VideoResponse{
		Status:     "success",
		VideoURL:   "https://res.cloudinary.com/demo/video/upload/c_fill,h_1080,w_1920/abc.mp4",
		Identifier: "known-id",
	}
	if err := store.Insert(stored); err != nil {
		t.Fatalf("insert: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/score-video/known-id", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.VideoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Identifier != "known-id" || got.VideoURL != stored.VideoURL {
		t.Errorf("unexpected response: %+v", got)
	}
}

func TestGetScoredVideoNotFound(t *testing.T) {
	router, _ := newLookupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/score-video/unknown", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
