package session

import (
	"context"
	"errors"
	"fmt"

	"pathfinder_gateway/internal/models"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage implements Storage on top of postgres so a multi-instance
// deployment shares one session table.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage connects to postgres and migrates the session table
func NewGormStorage(dsn string) (*GormStorage, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect session storage: %w", err)
	}

	if err := db.AutoMigrate(&models.GatewaySession{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session storage: %w", err)
	}

	return &GormStorage{db: db}, nil
}

// NewGormStorageWithDB wraps an existing connection (used by tests)
func NewGormStorageWithDB(db *gorm.DB) (*GormStorage, error) {
	if err := db.AutoMigrate(&models.GatewaySession{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session storage: %w", err)
	}
	return &GormStorage{db: db}, nil
}

// Save upserts the {token, user} pair in a single row
func (s *GormStorage) Save(ctx context.Context, sessionID, token string, user []byte) error {
	rec := models.GatewaySession{
		ID:       sessionID,
		Token:    token,
		UserBlob: datatypes.JSON(user),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "user_blob", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to store session record: %w", err)
	}
	return nil
}

// Load reads the pair back; gorm.ErrRecordNotFound maps to ErrNotFound
func (s *GormStorage) Load(ctx context.Context, sessionID string) (string, []byte, error) {
	var rec models.GatewaySession
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("failed to read session record: %w", err)
	}

	if rec.Token == "" || len(rec.UserBlob) == 0 {
		return "", nil, fmt.Errorf("incomplete session record")
	}

	return rec.Token, []byte(rec.UserBlob), nil
}

// Clear deletes the row; a missing row is not an error
func (s *GormStorage) Clear(ctx context.Context, sessionID string) error {
	if err := s.db.WithContext(ctx).Delete(&models.GatewaySession{}, "id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}
