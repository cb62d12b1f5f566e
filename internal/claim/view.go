package claim

import (
	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/rewards"
)

// ItemSlot is one earned item and the trainer it is assigned to, if any
type ItemSlot struct {
	Index       int
	Item        domain.RewardItem
	TrainerID   int64
	TrainerName string
}

// Assigned reports whether the item has a trainer
func (s ItemSlot) Assigned() bool {
	return s.TrainerID != 0
}

// View is a read-only picture of a claim session for display
type View struct {
	Reward           domain.UnclaimedReward
	AvailableLevels  int
	AvailableCoins   int
	LevelAllocations []domain.LevelAllocation
	CoinAllocations  []domain.CoinAllocation
	Items            []ItemSlot
	Unassigned       []int
	Readiness        rewards.Reason
	LastRejection    string
}

// Ready reports whether the session can be submitted
func (v *View) Ready() bool {
	return v.Readiness == rewards.Ready
}

func newView(s *rewards.ClaimSession) *View {
	reward := s.Reward()
	roster := s.Roster()
	assignments := s.ItemAssignments()

	items := make([]ItemSlot, len(reward.ItemsEarned))
	for i, item := range reward.ItemsEarned {
		slot := ItemSlot{Index: i, Item: item}
		if i < len(assignments) && assignments[i] != 0 {
			slot.TrainerID = assignments[i]
			slot.TrainerName = rewards.UnknownTrainerName
			if t, ok := roster.Trainer(assignments[i]); ok && t.Name != "" {
				slot.TrainerName = t.Name
			}
		}
		items[i] = slot
	}

	return &View{
		Reward:           reward,
		AvailableLevels:  s.AvailableLevels(),
		AvailableCoins:   s.AvailableCoins(),
		LevelAllocations: s.LevelAllocations(),
		CoinAllocations:  s.CoinAllocations(),
		Items:            items,
		Unassigned:       s.UnassignedItems(),
		Readiness:        s.ValidateReadyToClaim(),
		LastRejection:    s.LastRejection(),
	}
}
