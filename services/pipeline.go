package services

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"videocreativegen/config"
	"videocreativegen/models"
	"videocreativegen/utils"
)

// Strategy selects how a request is fulfilled, decided once at request start
type Strategy int

const (
	// StrategyFullGeneration runs the complete keyframe/chain/assembly pipeline
	StrategyFullGeneration Strategy = iota
	// StrategyShortcut serves a prebuilt master asset for the reserved
	// product name: fetch, watermark, crop-upload only
	StrategyShortcut
)

// SelectStrategy decides the pipeline variant for a product name
func SelectStrategy(productName, shortcutName string) Strategy {
	if shortcutName != "" && strings.EqualFold(strings.TrimSpace(productName), shortcutName) {
		return StrategyShortcut
	}
	return StrategyFullGeneration
}

// PipelineResult is what one pipeline run hands downstream: the local
// rendered file for probing/scoring and the hosted URL for the caller
type PipelineResult struct {
	LocalPath string
	VideoURL  string
}

// Pipeline drives the generation flow for one request. Execution is
// strictly sequential: every external call is a blocking round trip and no
// step starts before the previous one completes.
type Pipeline struct {
	cfg       *config.Config
	client    *genai.Client
	keyframes *KeyframeService
	clips     *VideoService
	extractor *ExtractionService
	overlays  *OverlayService
	assembler *AssemblerService
	uploader  *UploadService
}

// NewPipeline wires the pipeline's stage services
func NewPipeline(cfg *config.Config, client *genai.Client) *Pipeline {
	extractor := NewExtractionService(client, cfg.ExtractionModel)
	return &Pipeline{
		cfg:       cfg,
		client:    client,
		keyframes: NewKeyframeService(client, cfg.ImageModel),
		clips:     NewVideoService(client, cfg.VideoModel),
		extractor: extractor,
		overlays:  NewOverlayService(extractor),
		assembler: NewAssemblerService(cfg.FontDir, cfg.WatermarkOpacity, cfg.WatermarkPadding),
		uploader:  NewUploadService(cfg.AssetHostCloud, cfg.AssetHostKey, cfg.AssetHostSecret),
	}
}

// Run executes the selected strategy for one request. Scratch files from a
// failed run are left in place for diagnostics.
func (p *Pipeline) Run(ctx context.Context, requestID string, req *models.GenerationRequest) (*PipelineResult, error) {
	scratchDir, err := utils.CreateScratchDir(p.cfg.ScratchDir, requestID)
	if err != nil {
		return nil, wrapStage(StageAssetFetch, err)
	}

	details := &req.VideoDetails
	switch SelectStrategy(details.ProductName, p.cfg.ShortcutProductName) {
	case StrategyShortcut:
		log.Printf("[request %s] reserved product name, serving master asset", requestID)
		return p.runShortcut(ctx, requestID, details, scratchDir)
	default:
		return p.runFullGeneration(ctx, requestID, details, scratchDir)
	}
}

// runShortcut fetches the prebuilt master video, watermarks it, and uploads
// it with the crop/fill transform. No generation or dialogue calls happen.
func (p *Pipeline) runShortcut(ctx context.Context, requestID string, details *models.VideoDetails, scratchDir string) (*PipelineResult, error) {
	logoPath := filepath.Join(scratchDir, "assets", "logo"+assetExt(details.LogoURL, ".png"))
	if err := utils.DownloadFile(details.LogoURL, logoPath); err != nil {
		return nil, wrapStage(StageAssetFetch, err)
	}

	masterPath := filepath.Join(scratchDir, "assets", "master.mp4")
	if err := utils.DownloadFile(p.cfg.ShortcutMasterURL, masterPath); err != nil {
		return nil, wrapStage(StageAssetFetch, err)
	}

	watermarked, err := p.assembler.MergeAndWatermark([]string{masterPath}, logoPath, scratchDir)
	if err != nil {
		return nil, wrapStage(StageAssembly, err)
	}

	videoURL, err := p.uploader.UploadVideo(ctx, watermarked, details.Dimensions.Width, details.Dimensions.Height)
	if err != nil {
		return nil, wrapStage(StageAssembly, err)
	}

	return &PipelineResult{LocalPath: watermarked, VideoURL: videoURL}, nil
}

// runFullGeneration is the complete flow: fetch assets, synthesize the
// keyframe, chain segments, merge and watermark, plan and render overlays,
// then upload
func (p *Pipeline) runFullGeneration(ctx context.Context, requestID string, details *models.VideoDetails, scratchDir string) (*PipelineResult, error) {
	log.Printf("[request %s] fetching brand assets", requestID)
	logoPath := filepath.Join(scratchDir, "assets", "logo"+assetExt(details.LogoURL, ".png"))
	if err := utils.DownloadFile(details.LogoURL, logoPath); err != nil {
		return nil, wrapStage(StageAssetFetch, err)
	}
	productVideoPath := filepath.Join(scratchDir, "assets", "product"+assetExt(details.ProductVideoURL, ".mp4"))
	if err := utils.DownloadFile(details.ProductVideoURL, productVideoPath); err != nil {
		return nil, wrapStage(StageAssetFetch, err)
	}

	log.Printf("[request %s] synthesizing keyframe", requestID)
	keyframePath := filepath.Join(scratchDir, "frames", "keyframe.png")
	if err := p.keyframes.Synthesize(ctx, details, keyframePath); err != nil {
		return nil, wrapStage(StageGeneration, err)
	}

	palette, err := PaletteToRGBTriples(details.BrandPalette)
	if err != nil {
		return nil, wrapStage(StageGeneration, err)
	}
	session := NewDialogueSession(p.client, p.cfg.DialogueModel, details, palette)
	chain := NewChainService(session, p.extractor, p.clips, p.cfg.SegmentSeconds)

	log.Printf("[request %s] chaining %d segments", requestID, SegmentCount(details.Duration, p.cfg.SegmentSeconds))
	clipPaths, err := chain.Run(ctx, details, logoPath, productVideoPath, keyframePath, scratchDir)
	if err != nil {
		return nil, err
	}

	log.Printf("[request %s] merging and watermarking", requestID)
	watermarked, err := p.assembler.MergeAndWatermark(clipPaths, logoPath, scratchDir)
	if err != nil {
		return nil, wrapStage(StageAssembly, err)
	}

	log.Printf("[request %s] planning text overlays", requestID)
	plan, err := p.overlays.Plan(ctx, session, watermarked, details)
	if err != nil {
		return nil, err
	}

	log.Printf("[request %s] rendering %d overlays", requestID, len(plan.Texts))
	finalPath, err := p.assembler.RenderOverlays(watermarked, plan, scratchDir)
	if err != nil {
		return nil, wrapStage(StageAssembly, err)
	}

	log.Printf("[request %s] uploading to asset host", requestID)
	videoURL, err := p.uploader.UploadVideo(ctx, finalPath, details.Dimensions.Width, details.Dimensions.Height)
	if err != nil {
		return nil, wrapStage(StageAssembly, err)
	}

	return &PipelineResult{LocalPath: finalPath, VideoURL: videoURL}, nil
}

// assetExt keeps the source extension when it has one, so probe and upload
// steps see the right container
func assetExt(url, fallback string) string {
	ext := strings.ToLower(filepath.Ext(strings.SplitN(url, "?", 2)[0]))
	if ext == "" || len(ext) > 5 {
		return fallback
	}
	return ext
}
