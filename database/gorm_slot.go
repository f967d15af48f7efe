package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/filmreel/models"
)

// GormSlot stores slot values as rows of the 'slots' table.
type GormSlot struct {
	DB *gorm.DB
}

func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{DB: db}
}

func (s *GormSlot) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var slot models.Slot
	err := s.DB.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return slot.Value, true, nil
}

func (s *GormSlot) Write(ctx context.Context, key string, value []byte) error {
	slot := models.Slot{Key: key, Value: value, UpdatedAt: time.Now().Unix()}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
