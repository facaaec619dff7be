package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"videocreativegen/models"
)

// ErrNotFound is returned when no response exists for an identifier
var ErrNotFound = errors.New("video response not found")

// videoResponseRecord is the single-table persistence schema: a generated
// identifier and the serialized VideoResponse payload.
type videoResponseRecord struct {
	ID           string `gorm:"column:id;primaryKey"`
	ResponseData string `gorm:"column:response_data"`
}

func (videoResponseRecord) TableName() string {
	return "video_responses"
}

// Store persists VideoResponse records keyed by identifier
type Store struct {
	db *gorm.DB
}

// NewStore opens (or creates) the SQLite database and migrates the schema
func NewStore(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&videoResponseRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert persists a response under its identifier. Insert-if-absent: a
// duplicate identifier is an error, records are never overwritten.
func (s *Store) Insert(response *models.VideoResponse) error {
	if response.Identifier == "" {
		return fmt.Errorf("response has no identifier")
	}

	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to serialize response: %w", err)
	}

	record := videoResponseRecord{
		ID:           response.Identifier,
		ResponseData: string(data),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert response %s: %w", response.Identifier, err)
	}
	return nil
}

// GetByIdentifier looks up a persisted response. Returns ErrNotFound for an
// identifier that was never persisted, never a default response.
func (s *Store) GetByIdentifier(identifier string) (*models.VideoResponse, error) {
	var record videoResponseRecord
	result := s.db.Where("id = ?", identifier).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	var response models.VideoResponse
	if err := json.Unmarshal([]byte(record.ResponseData), &response); err != nil {
		return nil, fmt.Errorf("failed to deserialize response %s: %w", identifier, err)
	}
	return &response, nil
}
