package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// UploadService pushes the composited video to the remote asset host. The
// returned URL applies the host's crop/fill transform to the caller's exact
// requested dimensions, so the externally visible asset always matches the
// request even when the generated frames do not.
type UploadService struct {
	cloud     string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewUploadService creates a new asset host client
func NewUploadService(cloud, apiKey, apiSecret string) *UploadService {
	return &UploadService{
		cloud:     cloud,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client: &http.Client{
			Timeout: 10 * time.Minute, // Videos take longer
		},
	}
}

type uploadResult struct {
	PublicID string `json:"public_id"`
	Format   string `json:"format"`
	Error    struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadVideo uploads the file and returns the crop/fill delivery URL for
// the requested width and height
func (us *UploadService) UploadVideo(ctx context.Context, videoPath string, width, height int) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video: %w", err)
	}
	defer file.Close()

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := us.sign(timestamp)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(videoPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to buffer video: %w", err)
	}
	writer.WriteField("api_key", us.apiKey)
	writer.WriteField("timestamp", timestamp)
	writer.WriteField("signature", signature)
	if err := writer.Close(); err != nil {
		return "", err
	}

	uploadURL := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/video/upload", us.cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := us.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	var result uploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, result.Error.Message)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("upload response has no public id")
	}

	format := result.Format
	if format == "" {
		format = "mp4"
	}
	return us.deliveryURL(result.PublicID, format, width, height), nil
}

// deliveryURL builds the crop/fill transform URL for the uploaded asset
func (us *UploadService) deliveryURL(publicID, format string, width, height int) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/video/upload/c_fill,h_%d,w_%d/%s.%s",
		us.cloud, height, width, publicID, format)
}

// sign produces the asset host's request signature: the parameter string
// followed by the API secret, SHA-1 hashed
func (us *UploadService) sign(timestamp string) string {
	sum := sha1.Sum([]byte("timestamp=" + timestamp + us.apiSecret))
	return hex.EncodeToString(sum[:])
}
