package utils

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// CreateScratchDir creates the scratch directory tree for one request.
// Scratch paths are namespaced per request so concurrent requests never
// share filenames.
func CreateScratchDir(baseDir, requestID string) (string, error) {
	requestDir := filepath.Join(baseDir, requestID)

	dirs := []string{
		requestDir,
		filepath.Join(requestDir, "assets"),
		filepath.Join(requestDir, "segments"),
		filepath.Join(requestDir, "frames"),
		filepath.Join(requestDir, "output"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return requestDir, nil
}

// DownloadFile downloads a file from URL to destination path. Same-named
// destinations are overwritten silently; each call is independent.
func DownloadFile(url, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetFileSizeMB returns file size in megabytes
func GetFileSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(info.Size()) / (1024 * 1024), nil
}
