package services

import (
	"gorm.io/gorm"

	"cosmicfit-api/models"
)

// displayTokensPerActivity is the leaderboard's display heuristic. It is a
// flat per-activity score, deliberately distinct from the ledger's real
// tokens_awarded sums.
const displayTokensPerActivity = 50

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Address       string  `json:"address"`
	ENSName       *string `json:"ensName"`
	Activities    int64   `json:"activities"`
	Tokens        int64   `json:"tokens"`
	Badges        int     `json:"badges"`
	IsCurrentUser bool    `json:"isCurrentUser"`
}

// LeaderboardService ranks wallets by activity count.
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// Ranking returns all wallets ordered by activity count, marking the
// requesting wallet when one is given.
func (s *LeaderboardService) Ranking(currentWallet string) ([]LeaderboardEntry, error) {
	var rows []struct {
		WalletAddress string
		Activities    int64
	}
	if err := s.DB.Model(&models.Activity{}).
		Select("wallet_address, COUNT(*) AS activities").
		Group("wallet_address").
		Order("activities DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Address:       row.WalletAddress,
			Activities:    row.Activities,
			Tokens:        row.Activities * displayTokensPerActivity,
			Badges:        len(DeriveBadges(row.Activities)),
			IsCurrentUser: currentWallet != "" && row.WalletAddress == currentWallet,
		})
	}
	return entries, nil
}
