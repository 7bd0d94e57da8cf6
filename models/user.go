package models

import "time"

// User is created on first successful wallet authentication and never
// deleted. The checksummed wallet address is the primary key for all
// per-user state.
type User struct {
	WalletAddress string    `gorm:"primaryKey;size:42" json:"wallet_address"`
	JoinDate      time.Time `gorm:"autoCreateTime" json:"join_date"`
}
