package rewards

import (
	"fmt"

	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// Snapshot is the serializable form of an open session, used to persist
// drafts between bot restarts.
type Snapshot struct {
	Reward           domain.UnclaimedReward   `json:"reward"`
	AvailableLevels  int                      `json:"available_levels"`
	AvailableCoins   int                      `json:"available_coins"`
	LevelAllocations []domain.LevelAllocation `json:"level_allocations"`
	CoinAllocations  []domain.CoinAllocation  `json:"coin_allocations"`
	ItemAssignments  []int64                  `json:"item_assignments"`
	NextID           int64                    `json:"next_id"`
	LastRejection    string                   `json:"last_rejection,omitempty"`
}

// Snapshot captures the session state. Closed sessions have nothing worth
// persisting and still produce an empty snapshot.
func (s *ClaimSession) Snapshot() Snapshot {
	coins := make([]domain.CoinAllocation, len(s.coinAllocations))
	copy(coins, s.coinAllocations)

	return Snapshot{
		Reward:           copyReward(s.reward),
		AvailableLevels:  s.availableLevels,
		AvailableCoins:   s.availableCoins,
		LevelAllocations: copyLevelAllocations(s.levelAllocations),
		CoinAllocations:  coins,
		ItemAssignments:  s.ItemAssignments(),
		NextID:           s.nextID,
		LastRejection:    s.lastRejection,
	}
}

// RestoreSession rebuilds a session from a snapshot. The pool conservation
// invariants are rechecked; a snapshot that breaks them is rejected with
// domain.ErrCorruptDraft. Roster membership is not rechecked.
func RestoreSession(snap Snapshot, roster *Roster) (*ClaimSession, error) {
	if err := checkSnapshot(snap); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCorruptDraft, err.Error())
	}

	s := BeginClaim(snap.Reward, roster)
	s.availableLevels = snap.AvailableLevels
	s.availableCoins = snap.AvailableCoins
	s.levelAllocations = copyLevelAllocations(snap.LevelAllocations)
	s.coinAllocations = make([]domain.CoinAllocation, len(snap.CoinAllocations))
	copy(s.coinAllocations, snap.CoinAllocations)
	copy(s.itemAssignments, snap.ItemAssignments)
	s.nextID = snap.NextID
	s.lastRejection = snap.LastRejection
	return s, nil
}

func checkSnapshot(snap Snapshot) error {
	reward := snap.Reward
	reward.Normalize()

	if snap.AvailableLevels < 0 || snap.AvailableLevels > reward.LevelsEarned {
		return fmt.Errorf("available levels %d outside [0, %d]", snap.AvailableLevels, reward.LevelsEarned)
	}
	if snap.AvailableCoins < 0 || snap.AvailableCoins > reward.CoinsEarned {
		return fmt.Errorf("available coins %d outside [0, %d]", snap.AvailableCoins, reward.CoinsEarned)
	}
	if len(snap.ItemAssignments) != len(reward.ItemsEarned) {
		return fmt.Errorf("%d item assignments for %d items", len(snap.ItemAssignments), len(reward.ItemsEarned))
	}

	seen := make(map[int64]bool)
	checkID := func(id int64) error {
		if id <= 0 || id > snap.NextID {
			return fmt.Errorf("allocation id %d outside (0, %d]", id, snap.NextID)
		}
		if seen[id] {
			return fmt.Errorf("duplicate allocation id %d", id)
		}
		seen[id] = true
		return nil
	}

	levels := snap.AvailableLevels
	for _, a := range snap.LevelAllocations {
		if err := checkID(a.ID); err != nil {
			return err
		}
		if a.Levels < 1 {
			return fmt.Errorf("level allocation %d has %d levels", a.ID, a.Levels)
		}
		if !a.EntityType.Valid() {
			return fmt.Errorf("level allocation %d has entity type %q", a.ID, a.EntityType)
		}
		if (a.EntityType == domain.EntityMonster) != (a.TrainerInfo != nil) {
			return fmt.Errorf("level allocation %d trainer info does not match entity type", a.ID)
		}
		levels += a.Levels
	}
	if levels != reward.LevelsEarned {
		return fmt.Errorf("levels sum to %d, earned %d", levels, reward.LevelsEarned)
	}

	coins := snap.AvailableCoins
	for _, a := range snap.CoinAllocations {
		if err := checkID(a.ID); err != nil {
			return err
		}
		if a.Coins < 1 {
			return fmt.Errorf("coin allocation %d has %d coins", a.ID, a.Coins)
		}
		coins += a.Coins
	}
	if coins != reward.CoinsEarned {
		return fmt.Errorf("coins sum to %d, earned %d", coins, reward.CoinsEarned)
	}

	for i, trainerID := range snap.ItemAssignments {
		if trainerID < 0 {
			return fmt.Errorf("item %d assigned to trainer %d", i, trainerID)
		}
	}
	return nil
}
