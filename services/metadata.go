package services

import (
	"fmt"
	"math"

	"videocreativegen/models"
	"videocreativegen/utils"
)

// ProbeMetadata derives file size, duration, and resolution from the
// rendered output file. The caller overrides the probed resolution with the
// requested dimensions; the probe's value is informational only.
func ProbeMetadata(videoPath string) (*models.Metadata, error) {
	sizeMB, err := utils.GetFileSizeMB(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output: %w", err)
	}

	duration, err := utils.GetVideoDuration(videoPath)
	if err != nil {
		return nil, err
	}

	width, height, err := utils.GetVideoResolution(videoPath)
	if err != nil {
		return nil, err
	}

	return &models.Metadata{
		FileSizeMB:      math.Round(sizeMB*100) / 100,
		DurationSeconds: int(duration),
		Resolution:      models.Resolution{Width: width, Height: height},
	}, nil
}
