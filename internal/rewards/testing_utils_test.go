package rewards

import (
	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// testRoster has trainers 1 and 2; monster 10 belongs to trainer 1 and
// monster 20 to trainer 2.
func testRoster() *Roster {
	return NewRoster(
		[]domain.Trainer{
			{ID: 1, Name: "Ash", Level: 12},
			{ID: 2, Name: "Misty", Level: 9},
		},
		[]domain.Monster{
			{ID: 10, Name: "Sparky", Species1: "Pikachu", Level: 20, TrainerID: 1},
			{ID: 20, Species1: "Staryu", Species2: "Starmie", Level: 15, TrainerID: 2},
		},
	)
}

func testReward(levels, coins int, items ...string) domain.UnclaimedReward {
	reward := domain.UnclaimedReward{
		ID:             42,
		AdventureID:    7,
		AdventureTitle: "Into the Mist",
		LevelsEarned:   levels,
		CoinsEarned:    coins,
		ItemsEarned:    []domain.RewardItem{},
	}
	for i, name := range items {
		reward.ItemsEarned = append(reward.ItemsEarned, domain.RewardItem{
			ItemID:   int64(100 + i),
			Name:     name,
			Quantity: 1,
		})
	}
	return reward
}

func sumLevels(s *ClaimSession) int {
	total := s.AvailableLevels()
	for _, a := range s.LevelAllocations() {
		total += a.Levels
	}
	return total
}

func sumCoins(s *ClaimSession) int {
	total := s.AvailableCoins()
	for _, a := range s.CoinAllocations() {
		total += a.Coins
	}
	return total
}
