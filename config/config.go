package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	ScratchDir  string
	DBPath      string
	FrontendURL string

	// Gemini / generation models
	GeminiAPIKey    string
	DialogueModel   string
	ExtractionModel string
	ScoringModel    string
	ImageModel      string
	VideoModel      string

	// Segment settings
	SegmentSeconds int
	MaxDuration    int

	// Asset host (Cloudinary-compatible)
	AssetHostCloud  string
	AssetHostKey    string
	AssetHostSecret string

	// Watermark / overlay rendering
	FontDir          string
	WatermarkOpacity float64
	WatermarkPadding int

	// Shortcut master asset
	ShortcutProductName string
	ShortcutMasterURL   string

	// Notification mail
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		ScratchDir:  getEnv("SCRATCH_DIR", "./tmp"),
		DBPath:      getEnv("DB_PATH", "video_responses.db"),
		FrontendURL: getEnv("FRONTEND_URL", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		DialogueModel:   getEnv("DIALOGUE_MODEL", "gemini-2.0-flash-exp"),
		ExtractionModel: getEnv("EXTRACTION_MODEL", "gemini-2.0-flash-exp"),
		ScoringModel:    getEnv("SCORING_MODEL", "gemini-2.0-flash-exp"),
		ImageModel:      getEnv("IMAGE_MODEL", "imagen-3.0-generate-002"),
		VideoModel:      getEnv("VIDEO_MODEL", "veo-2.0-generate-001"),

		SegmentSeconds: getEnvAsInt("SEGMENT_SECONDS", 5),
		MaxDuration:    getEnvAsInt("MAX_DURATION", 60),

		AssetHostCloud:  getEnv("ASSET_HOST_CLOUD", ""),
		AssetHostKey:    getEnv("ASSET_HOST_KEY", ""),
		AssetHostSecret: getEnv("ASSET_HOST_SECRET", ""),

		FontDir:          getEnv("FONT_DIR", "resources"),
		WatermarkOpacity: getEnvAsFloat("WATERMARK_OPACITY", 0.6),
		WatermarkPadding: getEnvAsInt("WATERMARK_PADDING", 20),

		ShortcutProductName: getEnv("SHORTCUT_PRODUCT_NAME", ""),
		ShortcutMasterURL:   getEnv("SHORTCUT_MASTER_URL", ""),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "noreply@videocreativegen.app"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	if c.AssetHostCloud == "" {
		return errors.New("ASSET_HOST_CLOUD is required")
	}
	if c.SegmentSeconds <= 0 {
		return errors.New("SEGMENT_SECONDS must be positive")
	}
	if c.MaxDuration <= 0 {
		return errors.New("MAX_DURATION must be positive")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DialogueModel: %s, VideoModel: %s, SegmentSeconds: %d}",
		c.Port, c.DialogueModel, c.VideoModel, c.SegmentSeconds)
}
