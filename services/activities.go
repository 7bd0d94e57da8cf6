package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cosmicfit-api/models"
)

const (
	maxDistance        = 200
	maxDurationMinutes = 24 * 60
)

// ActivityInput is one activity as submitted by a client, before validation.
type ActivityInput struct {
	ActivityType string
	Distance     *float64
	Duration     *int
	Date         time.Time
}

// ActivityService owns the append-only activity ledger.
type ActivityService struct {
	DB  *gorm.DB
	log *zap.Logger
}

func NewActivityService(db *gorm.DB, log *zap.Logger) *ActivityService {
	return &ActivityService{DB: db, log: log}
}

func validateActivity(in ActivityInput) error {
	if len(in.ActivityType) < 2 || len(in.ActivityType) > 32 {
		return fmt.Errorf("%w: activity_type must be 2-32 characters", ErrValidation)
	}
	if in.Distance != nil && (*in.Distance < 0 || *in.Distance > maxDistance) {
		return fmt.Errorf("%w: distance must be between 0 and %d", ErrValidation, maxDistance)
	}
	if in.Duration != nil && (*in.Duration < 0 || *in.Duration > maxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between 0 and %d minutes", ErrValidation, maxDurationMinutes)
	}
	if in.Distance == nil && in.Duration == nil {
		return fmt.Errorf("%w: provide distance or duration", ErrValidation)
	}
	hasDistance := in.Distance != nil && *in.Distance > 0
	hasDuration := in.Duration != nil && *in.Duration > 0
	if !hasDistance && !hasDuration {
		return fmt.Errorf("%w: distance or duration must be positive", ErrValidation)
	}
	return nil
}

// Log validates and appends one activity, fixing its token award at
// creation time.
func (s *ActivityService) Log(wallet string, in ActivityInput) (*models.Activity, error) {
	if err := validateActivity(in); err != nil {
		return nil, err
	}

	activity := models.Activity{
		WalletAddress: wallet,
		ActivityType:  in.ActivityType,
		Distance:      in.Distance,
		Duration:      in.Duration,
		Date:          in.Date,
		TokensAwarded: AccrueTokens(in.ActivityType, in.Distance, in.Duration),
		Status:        models.ActivityStatusPending,
	}
	if err := s.DB.Create(&activity).Error; err != nil {
		return nil, err
	}

	s.log.Info("activity logged",
		zap.String("wallet", wallet),
		zap.String("activity_type", in.ActivityType),
		zap.Int("tokens_awarded", activity.TokensAwarded),
	)
	return &activity, nil
}

// ListByWallet returns a wallet's activities, newest first.
func (s *ActivityService) ListByWallet(wallet string) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.DB.Where("wallet_address = ?", wallet).
		Order("created_at DESC, id DESC").
		Find(&activities).Error
	return activities, err
}

// CountByWallet returns the wallet's total activity count.
func (s *ActivityService) CountByWallet(wallet string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Activity{}).
		Where("wallet_address = ?", wallet).
		Count(&count).Error
	return count, err
}
