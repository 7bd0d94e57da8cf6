package models

import "time"

// ActivityStatus tracks whether an activity's token award has been claimed.
type ActivityStatus string

const (
	ActivityStatusPending ActivityStatus = "pending"
	ActivityStatusClaimed ActivityStatus = "claimed"
)

// Activity is one logged fitness activity. TokensAwarded is computed once at
// creation and never recomputed, so later changes to the accrual rule do not
// retroactively alter past awards.
type Activity struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	WalletAddress string         `gorm:"size:42;index;not null" json:"wallet_address"`
	ActivityType  string         `gorm:"size:32;not null" json:"activity_type"`
	Distance      *float64       `json:"distance"`
	Duration      *int           `json:"duration"`
	Date          time.Time      `gorm:"type:date" json:"date"`
	TokensAwarded int            `gorm:"not null;default:0" json:"tokens_awarded"`
	Status        ActivityStatus `gorm:"size:16;default:'pending'" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
