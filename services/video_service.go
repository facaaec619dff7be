package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/genai"
)

// VideoService turns a motion prompt plus a seed image into one segment
// clip via the external image-to-video service. Each call is stateless on
// the service side; continuity comes entirely from the seed frame and the
// dialogue-derived prompt.
type VideoService struct {
	client       *genai.Client
	model        string
	pollInterval time.Duration
}

// NewVideoService creates a new video generation service
func NewVideoService(client *genai.Client, model string) *VideoService {
	return &VideoService{
		client:       client,
		model:        model,
		pollInterval: 10 * time.Second,
	}
}

// GenerateClip generates one segment clip seeded by seedFramePath and
// downloads it into the request's segments directory. First failure aborts;
// there is no retry.
func (vs *VideoService) GenerateClip(ctx context.Context, motionPrompt, seedFramePath, scratchDir string, index int) (string, error) {
	seedBytes, err := os.ReadFile(seedFramePath)
	if err != nil {
		return "", fmt.Errorf("failed to read seed frame: %w", err)
	}

	seedImage := &genai.Image{
		ImageBytes: seedBytes,
		MIMEType:   mimeTypeFor(seedFramePath),
	}

	operation, err := vs.client.Models.GenerateVideos(ctx, vs.model, motionPrompt, seedImage,
		&genai.GenerateVideosConfig{NumberOfVideos: 1})
	if err != nil {
		return "", fmt.Errorf("segment %d generation failed: %w", index, err)
	}

	for !operation.Done {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(vs.pollInterval):
		}
		operation, err = vs.client.Operations.GetVideosOperation(ctx, operation, nil)
		if err != nil {
			return "", fmt.Errorf("segment %d polling failed: %w", index, err)
		}
	}

	if operation.Response == nil || len(operation.Response.GeneratedVideos) == 0 {
		return "", fmt.Errorf("segment %d generation returned no video", index)
	}

	video := operation.Response.GeneratedVideos[0]
	data, err := vs.client.Files.Download(ctx, video.Video, nil)
	if err != nil {
		return "", fmt.Errorf("segment %d download failed: %w", index, err)
	}
	if len(data) == 0 {
		data = video.Video.VideoBytes
	}
	if len(data) == 0 {
		return "", fmt.Errorf("segment %d download returned no bytes", index)
	}

	clipPath := filepath.Join(scratchDir, "segments", fmt.Sprintf("segment_%02d.mp4", index))
	if err := os.WriteFile(clipPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save segment %d: %w", index, err)
	}

	log.Printf("[chain] segment %d clip saved (%d bytes)", index, len(data))
	return clipPath, nil
}
