package services

// Badge describes one activity-count milestone. ID is stable and doubles as
// the claim-dedup key in the reward claim ledger.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Rarity      string `json:"rarity"`
	TokenID     string `json:"tokenId"`
	IPFSURL     string `json:"ipfsUrl"`
	Threshold   int64  `json:"-"`
}

// badgeMilestones is ordered by ascending threshold. Thresholds are
// cumulative and inclusive: a wallet above 100 qualifies for all four.
var badgeMilestones = []Badge{
	{ID: "badge-bronze", Name: "Bronze Achiever", Description: "Logged 10 activities", Emoji: "🥉", Rarity: "common", TokenID: "1", IPFSURL: "ipfs://badge-bronze", Threshold: 10},
	{ID: "badge-silver", Name: "Silver Voyager", Description: "Logged 25 activities", Emoji: "🥈", Rarity: "rare", TokenID: "2", IPFSURL: "ipfs://badge-silver", Threshold: 25},
	{ID: "badge-gold", Name: "Gold Legend", Description: "Logged 50 activities", Emoji: "🥇", Rarity: "epic", TokenID: "3", IPFSURL: "ipfs://badge-gold", Threshold: 50},
	{ID: "badge-cosmic", Name: "Cosmic Explorer", Description: "Logged 100 activities", Emoji: "🌌", Rarity: "legendary", TokenID: "4", IPFSURL: "ipfs://badge-cosmic", Threshold: 100},
}

// DeriveBadges maps an activity count to the set of earned badges. Pure and
// total: a count of 0 yields the empty set.
func DeriveBadges(activityCount int64) []Badge {
	var earned []Badge
	for _, b := range badgeMilestones {
		if activityCount >= b.Threshold {
			earned = append(earned, b)
		}
	}
	return earned
}

// badgeByID returns the milestone badge with the given id, if any.
func badgeByID(id string) (Badge, bool) {
	for _, b := range badgeMilestones {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
