package rewards

import (
	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// ValidateReadyToClaim returns Ready when every level and coin is allocated
// and every item has a trainer. Otherwise it returns the first blocker in
// the order levels, coins, items.
func (s *ClaimSession) ValidateReadyToClaim() Reason {
	if s.closed {
		return ReasonSessionClosed
	}
	if s.availableLevels > 0 {
		return ReasonLevelsNotAllocated
	}
	if s.availableCoins > 0 {
		return ReasonCoinsNotAllocated
	}
	for _, trainerID := range s.itemAssignments {
		if trainerID == 0 {
			return ReasonItemsNotAssigned
		}
	}
	return Ready
}

// UnassignedItems returns the indexes of items still waiting for a trainer.
func (s *ClaimSession) UnassignedItems() []int {
	var out []int
	for i, trainerID := range s.itemAssignments {
		if trainerID == 0 {
			out = append(out, i)
		}
	}
	return out
}

// BuildClaimRequest assembles the claim payload. It fails with a
// *domain.NotReadyError while anything is unallocated and never changes the
// session.
func (s *ClaimSession) BuildClaimRequest(userID int64) (domain.ClaimRequest, error) {
	if reason := s.ValidateReadyToClaim(); reason != Ready {
		return domain.ClaimRequest{}, &domain.NotReadyError{Reason: reason.String()}
	}

	coins := make([]domain.CoinAllocation, len(s.coinAllocations))
	copy(coins, s.coinAllocations)

	items := make([]domain.ItemAllocation, len(s.reward.ItemsEarned))
	for i, item := range s.reward.ItemsEarned {
		items[i] = domain.ItemAllocation{
			Item:      item,
			TrainerID: s.itemAssignments[i],
		}
	}

	return domain.ClaimRequest{
		AdventureLogID:   s.reward.ID,
		UserID:           userID,
		LevelAllocations: copyLevelAllocations(s.levelAllocations),
		CoinAllocations:  coins,
		ItemAllocations:  items,
	}, nil
}
