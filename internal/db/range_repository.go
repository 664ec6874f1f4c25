package db

import (
	"github.com/terraincognita07/rangepicker/internal/models"
	"gorm.io/gorm"
)

type RangeRepository struct {
	database *gorm.DB
}

func NewRangeRepository(database *gorm.DB) *RangeRepository {
	return &RangeRepository{database: database}
}

func (repo *RangeRepository) Create(entry *models.CommittedRange) error {
	return repo.database.Create(entry).Error
}

// ListBySession returns the newest commits first. A limit <= 0 returns all.
func (repo *RangeRepository) ListBySession(sessionID string, limit int) ([]models.CommittedRange, error) {
	query := repo.database.
		Where("session_id = ?", sessionID).
		Order("committed_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	entries := make([]models.CommittedRange, 0)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *RangeRepository) CountBySession(sessionID string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CommittedRange{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *RangeRepository) DeleteBySession(sessionID string) error {
	return repo.database.Where("session_id = ?", sessionID).Delete(&models.CommittedRange{}).Error
}
