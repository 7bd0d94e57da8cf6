package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cosmicfit-api/models"
)

// tokenClaimAmount is the fixed denomination of every token-milestone
// voucher, regardless of which milestone triggered it.
const tokenClaimAmount = 100

// tokenMilestoneStep is the token-sum interval that unlocks a token reward.
const tokenMilestoneStep = 100

// PendingReward is derived on demand and never persisted.
type PendingReward struct {
	ID          string `json:"id"`
	Kind        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	EarnedOn    string `json:"earnedDate"`
}

// RewardService resolves pending rewards and issues signed claim vouchers
// backed by the append-only claim ledger.
type RewardService struct {
	DB     *gorm.DB
	Signer *VoucherSigner
	log    *zap.Logger

	// Claims for one wallet are serialized in-process so two concurrent
	// requests cannot read the same claim count. The unique (wallet,
	// nonce) index remains the authoritative guard across processes.
	mu          sync.Mutex
	walletLocks map[string]*sync.Mutex
}

func NewRewardService(db *gorm.DB, signer *VoucherSigner, log *zap.Logger) *RewardService {
	return &RewardService{
		DB:          db,
		Signer:      signer,
		log:         log,
		walletLocks: make(map[string]*sync.Mutex),
	}
}

func (s *RewardService) walletLock(wallet string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.walletLocks[wallet]
	if !ok {
		lock = &sync.Mutex{}
		s.walletLocks[wallet] = lock
	}
	return lock
}

// PendingRewards computes the unclaimed reward set for a wallet. Read-only,
// idempotent and safe to call concurrently.
//
// A token reward is pending only while the summed tokens sit on an exact
// multiple of 100. Totals that skip over a multiple in one activity generate
// no reward for that crossing; this matches the original behavior and is
// kept deliberately.
func (s *RewardService) PendingRewards(wallet string) ([]PendingReward, error) {
	var activityCount int64
	if err := s.DB.Model(&models.Activity{}).
		Where("wallet_address = ?", wallet).
		Count(&activityCount).Error; err != nil {
		return nil, err
	}

	var totalTokens int64
	if err := s.DB.Model(&models.Activity{}).
		Where("wallet_address = ?", wallet).
		Select("COALESCE(SUM(tokens_awarded), 0)").
		Scan(&totalTokens).Error; err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	rewards := make([]PendingReward, 0, len(badgeMilestones)+1)

	if totalTokens > 0 && totalTokens%tokenMilestoneStep == 0 {
		rewards = append(rewards, PendingReward{
			ID:          fmt.Sprintf("token-%d", totalTokens),
			Kind:        "token",
			Title:       "Token Milestone",
			Description: fmt.Sprintf("You earned %d FITT tokens", totalTokens),
			Amount:      totalTokens,
			EarnedOn:    today,
		})
	}

	var claimedBadges []string
	if err := s.DB.Model(&models.RewardClaim{}).
		Where("wallet_address = ? AND badge_key IS NOT NULL", wallet).
		Pluck("badge_key", &claimedBadges).Error; err != nil {
		return nil, err
	}
	claimed := make(map[string]struct{}, len(claimedBadges))
	for _, id := range claimedBadges {
		claimed[id] = struct{}{}
	}

	for _, badge := range DeriveBadges(activityCount) {
		if _, done := claimed[badge.ID]; done {
			continue
		}
		rewards = append(rewards, PendingReward{
			ID:          badge.ID,
			Kind:        "badge",
			Title:       badge.Name,
			Description: badge.Description,
			Amount:      0,
			EarnedOn:    today,
		})
	}

	return rewards, nil
}

// classifyReward maps a claim id to its reward type and voucher amount.
func classifyReward(rewardID string) (rewardType string, amount int64, err error) {
	if strings.HasPrefix(rewardID, "token-") {
		return "token", tokenClaimAmount, nil
	}
	if badge, ok := badgeByID(rewardID); ok {
		return badge.ID, 0, nil
	}
	return "", 0, ErrUnknownReward
}

// Claim issues a signed voucher for a reward and appends the claim record.
//
// The nonce is the wallet's claim count plus one, computed inside a single
// per-wallet critical section and committed together with the claim row, so
// sequential successful claims carry strictly increasing nonces with no
// repeats. The claim record commits before the voucher is returned: a crash
// in between under-delivers a voucher but never double-issues one.
func (s *RewardService) Claim(wallet common.Address, rewardID string) (*Voucher, error) {
	rewardType, amount, err := classifyReward(rewardID)
	if err != nil {
		return nil, err
	}
	if !s.Signer.Configured() {
		return nil, ErrSignerUnavailable
	}

	addr := wallet.Hex()
	lock := s.walletLock(addr)
	lock.Lock()
	defer lock.Unlock()

	var voucher *Voucher
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var claimCount int64
		if err := tx.Model(&models.RewardClaim{}).
			Where("wallet_address = ?", addr).
			Count(&claimCount).Error; err != nil {
			return err
		}
		nonce := claimCount + 1

		signed, err := s.Signer.SignClaim(wallet, rewardType, amount, nonce)
		if err != nil {
			return err
		}

		claim := models.RewardClaim{
			WalletAddress: addr,
			RewardType:    rewardType,
			Amount:        amount,
			Nonce:         nonce,
		}
		if rewardType != "token" {
			key := rewardType
			claim.BadgeKey = &key
		}
		if err := tx.Create(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConcurrentClaim
			}
			return err
		}

		voucher = signed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("reward claimed",
		zap.String("wallet", addr),
		zap.String("reward_type", rewardType),
		zap.Int64("amount", amount),
		zap.Int64("nonce", voucher.Message.Nonce),
	)
	return voucher, nil
}

// ClaimHistory lists a wallet's claims, newest first.
func (s *RewardService) ClaimHistory(wallet string) ([]models.RewardClaim, error) {
	var claims []models.RewardClaim
	err := s.DB.Where("wallet_address = ?", wallet).
		Order("created_at DESC, id DESC").
		Find(&claims).Error
	return claims, err
}
