package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"videocreativegen/models"
	"videocreativegen/utils"
)

// promptDialogue is the slice of DialogueSession the chain needs
type promptDialogue interface {
	AppendFileContext(ctx context.Context, path string) error
	RequestPrompt(ctx context.Context, instruction string) (string, error)
}

// promptExtractor parses free-text replies into structured segment prompts
type promptExtractor interface {
	ExtractSegmentPrompt(ctx context.Context, freeText string) (*models.SegmentPrompt, error)
}

// clipGenerator produces one clip from a motion prompt and a seed frame
type clipGenerator interface {
	GenerateClip(ctx context.Context, motionPrompt, seedFramePath, scratchDir string, index int) (string, error)
}

// SegmentCount returns the number of fixed-length segments covering the
// requested duration: ceil(duration / segmentSeconds)
func SegmentCount(durationSeconds, segmentSeconds int) int {
	if durationSeconds <= 0 || segmentSeconds <= 0 {
		return 0
	}
	return (durationSeconds + segmentSeconds - 1) / segmentSeconds
}

// ChainService runs the segment-chaining state machine for one request:
// each iteration derives a motion prompt through the shared dialogue
// session, generates a clip seeded by the previous segment's last frame,
// and extracts that clip's last frame to seed the next iteration.
//
// The chain owns its running state exclusively: the session, the current
// seed frame, and the ordered clip list. It is created per request and
// discarded when the loop completes or aborts.
type ChainService struct {
	dialogue       promptDialogue
	extractor      promptExtractor
	clips          clipGenerator
	segmentSeconds int
	extractFrame   func(clipPath, framePath string) error
}

// NewChainService creates a chain for one request
func NewChainService(dialogue promptDialogue, extractor promptExtractor, clips clipGenerator, segmentSeconds int) *ChainService {
	return &ChainService{
		dialogue:       dialogue,
		extractor:      extractor,
		clips:          clips,
		segmentSeconds: segmentSeconds,
		extractFrame:   utils.ExtractLastFrame,
	}
}

// Run executes the chain. logoPath and productVideoPath seed the dialogue
// as initial multimodal context; keyframePath seeds segment 0. All
// iterations run unconditionally in order; one failed segment aborts the
// whole chain. Returns the ordered segment clip paths.
func (cs *ChainService) Run(ctx context.Context, details *models.VideoDetails, logoPath, productVideoPath, keyframePath, scratchDir string) ([]string, error) {
	count := SegmentCount(details.Duration, cs.segmentSeconds)
	if count == 0 {
		return nil, stageErrorf(StageGeneration, "duration %d yields no segments", details.Duration)
	}

	// INIT: seed the session with the brand's reference assets
	if err := cs.dialogue.AppendFileContext(ctx, logoPath); err != nil {
		return nil, wrapStage(StageGeneration, err)
	}
	if err := cs.dialogue.AppendFileContext(ctx, productVideoPath); err != nil {
		return nil, wrapStage(StageGeneration, err)
	}

	clipPaths := make([]string, 0, count)
	seedFrame := keyframePath
	var prevClip string

	for i := 0; i < count; i++ {
		log.Printf("[chain] segment %d/%d", i+1, count)

		// ADVANCING: ground the dialogue in the previous segment's output
		if i > 0 {
			if err := cs.dialogue.AppendFileContext(ctx, seedFrame); err != nil {
				return nil, wrapStage(StageGeneration, err)
			}
			if err := cs.dialogue.AppendFileContext(ctx, prevClip); err != nil {
				return nil, wrapStage(StageGeneration, err)
			}
		}

		reply, err := cs.dialogue.RequestPrompt(ctx, segmentInstruction(i, count, details))
		if err != nil {
			return nil, wrapStage(StageGeneration, fmt.Errorf("segment %d prompt: %w", i, err))
		}

		prompt, err := cs.extractor.ExtractSegmentPrompt(ctx, reply)
		if err != nil {
			return nil, wrapStage(StageExtraction, fmt.Errorf("segment %d prompt: %w", i, err))
		}

		clipPath, err := cs.clips.GenerateClip(ctx, prompt.Motion, seedFrame, scratchDir, i)
		if err != nil {
			return nil, wrapStage(StageGeneration, err)
		}

		framePath := filepath.Join(scratchDir, "frames", fmt.Sprintf("segment_%02d_last.png", i))
		if err := cs.extractFrame(clipPath, framePath); err != nil {
			return nil, wrapStage(StageGeneration, fmt.Errorf("segment %d last frame: %w", i, err))
		}

		clipPaths = append(clipPaths, clipPath)
		seedFrame = framePath
		prevClip = clipPath
	}

	// DONE: the final seed frame is not needed further
	return clipPaths, nil
}
