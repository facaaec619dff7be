package services

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"videocreativegen/models"
)

// DialogueSession carries one request's multimodal conversation with the
// language model. It is the single source of narrative continuity across
// otherwise-stateless generation calls: every prompt for every segment is
// derived by sending turns into this same session, never a fresh one.
//
// The session is owned exclusively by the chain for the request's lifetime.
// It is never shared across requests and never accessed concurrently.
type DialogueSession struct {
	client  *genai.Client
	model   string
	config  *genai.GenerateContentConfig
	history []*genai.Content
}

// NewDialogueSession creates a session seeded with the creative-director
// brief for this request's brand
func NewDialogueSession(client *genai.Client, model string, details *models.VideoDetails, palette []string) *DialogueSession {
	return &DialogueSession{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(buildDirectorBrief(details, palette), genai.RoleUser),
			Temperature:       float32Ptr(1.0),
		},
	}
}

// AppendFileContext uploads a local file and appends it to the conversation
// as a context turn, without requesting a model reply
func (s *DialogueSession) AppendFileContext(ctx context.Context, path string) error {
	file, err := uploadFileAndWait(ctx, s.client, path)
	if err != nil {
		return err
	}

	s.history = append(s.history, &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{FileData: &genai.FileData{FileURI: file.URI, MIMEType: file.MIMEType}},
		},
	})
	return nil
}

// RequestPrompt sends a text turn into the session and returns the model's
// free-text reply, recording both sides in the history
func (s *DialogueSession) RequestPrompt(ctx context.Context, instruction string) (string, error) {
	s.history = append(s.history, genai.NewContentFromText(instruction, genai.RoleUser))

	result, err := s.client.Models.GenerateContent(ctx, s.model, s.history, s.config)
	if err != nil {
		return "", fmt.Errorf("dialogue turn failed: %w", err)
	}

	reply := result.Text()
	if reply == "" {
		return "", fmt.Errorf("dialogue returned an empty reply")
	}

	s.history = append(s.history, genai.NewContentFromText(reply, genai.RoleModel))
	return reply, nil
}

// uploadFileAndWait pushes a local file to the Files API and blocks until it
// becomes ACTIVE, mirroring the wait the multimodal endpoints require before
// a file can be referenced in a turn
func uploadFileAndWait(ctx context.Context, client *genai.Client, path string) (*genai.File, error) {
	file, err := client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType: mimeTypeFor(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", filepath.Base(path), err)
	}

	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
		file, err = client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to poll file %s: %w", filepath.Base(path), err)
		}
	}

	if file.State != genai.FileStateActive {
		return nil, fmt.Errorf("file %s ended in state %s", filepath.Base(path), file.State)
	}
	return file, nil
}

func mimeTypeFor(path string) string {
	if mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); mimeType != "" {
		return mimeType
	}
	return "application/octet-stream"
}

func float32Ptr(f float32) *float32 {
	return &f
}
