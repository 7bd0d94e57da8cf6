package services

import (
	"gorm.io/gorm"

	"cosmicfit-api/models"
)

// BadgeService derives earned badges from the activity ledger.
type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// EarnedBadges returns the badges a wallet currently qualifies for,
// regardless of claim status.
func (s *BadgeService) EarnedBadges(wallet string) ([]Badge, error) {
	var count int64
	if err := s.DB.Model(&models.Activity{}).
		Where("wallet_address = ?", wallet).
		Count(&count).Error; err != nil {
		return nil, err
	}
	return DeriveBadges(count), nil
}
