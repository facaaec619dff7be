package utils

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// RunFFmpegCommand executes an FFmpeg command
func RunFFmpegCommand(args []string) error {
	cmd := exec.Command("ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("ffmpeg error: %w, stderr: %s", err, stderr.String())
	}

	return nil
}

// GetVideoDuration returns the duration of a video file in seconds
func GetVideoDuration(videoPath string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// GetVideoResolution returns the pixel width and height of the first video stream
func GetVideoResolution(videoPath string) (int, int, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		videoPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe error: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(output)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected ffprobe resolution output: %q", string(output))
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse width: %w", err)
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse height: %w", err)
	}

	return width, height, nil
}

// ExtractLastFrame writes the final frame of a video to an image file
func ExtractLastFrame(videoPath, framePath string) error {
	args := []string{
		"-sseof", "-0.5",
		"-i", videoPath,
		"-update", "1",
		"-frames:v", "1",
		"-q:v", "2",
		"-y", framePath,
	}
	return RunFFmpegCommand(args)
}

// ConcatClips concatenates clips losslessly in list order using the concat demuxer.
// All clips come from the same generation service, so stream parameters match.
func ConcatClips(inputFiles []string, outputPath string) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no input files provided")
	}

	listPath := filepath.Join(filepath.Dir(outputPath), "concat_list.txt")
	file, err := os.Create(listPath)
	if err != nil {
		return fmt.Errorf("failed to create concat list: %w", err)
	}
	for _, input := range inputFiles {
		absPath, err := filepath.Abs(input)
		if err != nil {
			file.Close()
			return fmt.Errorf("failed to get absolute path for %s: %w", input, err)
		}
		fmt.Fprintf(file, "file '%s'\n", absPath)
	}
	file.Close()

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y", outputPath,
	}
	return RunFFmpegCommand(args)
}

// BuildWatermarkFilter builds the filter_complex string overlaying a logo
// scaled to logoWidth px, semi-transparent, anchored bottom-right with padding
func BuildWatermarkFilter(logoWidth int, opacity float64, padding int) string {
	return fmt.Sprintf(
		"[1:v]scale=%d:-1,format=rgba,colorchannelmixer=aa=%.2f[wm];[0:v][wm]overlay=W-w-%d:H-h-%d",
		logoWidth, opacity, padding, padding)
}

// ApplyWatermark overlays logoPath onto videoPath. The logo is sized to
// one-eighth of the frame width and composited for the full duration.
func ApplyWatermark(videoPath, logoPath, outputPath string, opacity float64, padding int) error {
	width, _, err := GetVideoResolution(videoPath)
	if err != nil {
		return err
	}

	args := []string{
		"-i", videoPath,
		"-i", logoPath,
		"-filter_complex", BuildWatermarkFilter(width/8, opacity, padding),
		"-c:a", "copy",
		"-y", outputPath,
	}
	return RunFFmpegCommand(args)
}

// EscapeDrawtext escapes a text value for use inside a quoted drawtext option
func EscapeDrawtext(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `'`, `'\''`)
	return text
}

// BuildDrawtextFilter builds a single drawtext filter rendering one timed
// text layer: centered at (x%, y%) of the frame, clamped to non-negative
// coordinates, with a 0.3 s fade in and out inside its time window.
func BuildDrawtextFilter(text, fontFile string, fontSize int, fillColor, strokeColor string, xPct, yPct, start, end float64) string {
	const fade = 0.3

	alpha := fmt.Sprintf(
		"'if(lt(t,%[1]f+%[3]f),(t-%[1]f)/%[3]f,if(gt(t,%[2]f-%[3]f),(%[2]f-t)/%[3]f,1))'",
		start, end, fade)

	return fmt.Sprintf(
		"drawtext=fontfile='%s':text='%s':fontsize=%d:fontcolor=%s:bordercolor=%s:borderw=2:"+
			"x='max(W*%.4f-text_w/2,0)':y='max(H*%.4f-text_h/2,0)':"+
			"alpha=%s:enable='between(t,%f,%f)'",
		fontFile, EscapeDrawtext(text), fontSize, fillColor, strokeColor,
		xPct/100, yPct/100, alpha, start, end)
}

// RenderDrawtextFilters composites all drawtext filters onto one timeline
func RenderDrawtextFilters(videoPath string, filters []string, outputPath string) error {
	if len(filters) == 0 {
		// Nothing to draw, keep the stream untouched
		args := []string{"-i", videoPath, "-c", "copy", "-y", outputPath}
		return RunFFmpegCommand(args)
	}

	args := []string{
		"-i", videoPath,
		"-vf", strings.Join(filters, ","),
		"-c:a", "copy",
		"-y", outputPath,
	}
	return RunFFmpegCommand(args)
}
