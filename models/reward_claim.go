package models

import "time"

// RewardClaim is the append-only evidence that a reward voucher was issued.
//
// Nonce is unique per wallet: the composite index rejects two claims that
// raced to the same nonce, which is what makes voucher replay protection
// hold under concurrent claim requests. BadgeKey carries the badge id for
// badge claims and is NULL for token claims, so the (wallet, badge_key)
// index enforces the badge one-shot rule without limiting repeat token
// milestone claims.
type RewardClaim struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WalletAddress string    `gorm:"size:42;index;not null;uniqueIndex:idx_claims_wallet_nonce;uniqueIndex:idx_claims_wallet_badge" json:"wallet_address"`
	RewardType    string    `gorm:"size:32;not null" json:"reward_type"`
	Amount        int64     `gorm:"not null;default:0" json:"amount"`
	Nonce         int64     `gorm:"not null;uniqueIndex:idx_claims_wallet_nonce" json:"nonce"`
	BadgeKey      *string   `gorm:"size:32;uniqueIndex:idx_claims_wallet_badge" json:"-"`
	TxHash        *string   `gorm:"size:80" json:"tx_hash"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
