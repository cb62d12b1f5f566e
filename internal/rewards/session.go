package rewards

import (
	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// ClaimSession holds the in-progress allocation of one unclaimed reward.
//
// A session has a single owner and is mutated in place. Every mutation
// either succeeds completely or returns a *domain.ValidationError and leaves
// the session exactly as it was.
type ClaimSession struct {
	reward domain.UnclaimedReward
	roster *Roster

	availableLevels int
	availableCoins  int

	levelAllocations []domain.LevelAllocation
	coinAllocations  []domain.CoinAllocation

	// itemAssignments[i] is the trainer for reward.ItemsEarned[i]; 0 is unassigned
	itemAssignments []int64

	nextID        int64
	closed        bool
	lastRejection string
}

// BeginClaim starts a fresh session for reward against roster. The reward
// is copied so later changes by the caller do not leak into the session.
func BeginClaim(reward domain.UnclaimedReward, roster *Roster) *ClaimSession {
	reward = copyReward(reward)
	reward.Normalize()

	if roster == nil {
		roster = NewRoster(nil, nil)
	}

	return &ClaimSession{
		reward:           reward,
		roster:           roster,
		availableLevels:  reward.LevelsEarned,
		availableCoins:   reward.CoinsEarned,
		levelAllocations: []domain.LevelAllocation{},
		coinAllocations:  []domain.CoinAllocation{},
		itemAssignments:  make([]int64, len(reward.ItemsEarned)),
	}
}

func copyReward(r domain.UnclaimedReward) domain.UnclaimedReward {
	if r.ItemsEarned != nil {
		items := make([]domain.RewardItem, len(r.ItemsEarned))
		copy(items, r.ItemsEarned)
		r.ItemsEarned = items
	}
	return r
}

func reject(r Reason) error {
	return &domain.ValidationError{Reason: r.String()}
}

func (s *ClaimSession) newID() int64 {
	s.nextID++
	return s.nextID
}

// AddLevelAllocation commits levels to a trainer or monster. Monsters need
// ownerTrainerID set to the trainer that owns them; it is ignored for
// trainers.
func (s *ClaimSession) AddLevelAllocation(entityType domain.EntityType, entityID int64, levels int, ownerTrainerID int64) (domain.LevelAllocation, error) {
	if s.closed {
		return domain.LevelAllocation{}, reject(ReasonSessionClosed)
	}
	if levels < 1 || levels > s.availableLevels {
		return domain.LevelAllocation{}, reject(ReasonLevelsOutOfRange)
	}

	alloc := domain.LevelAllocation{
		EntityType: entityType,
		EntityID:   entityID,
		Levels:     levels,
	}

	switch entityType {
	case domain.EntityTrainer:
		trainer, ok := s.roster.Trainer(entityID)
		if !ok {
			return domain.LevelAllocation{}, reject(ReasonUnknownTrainer)
		}
		alloc.EntityName = trainerName(trainer)

	case domain.EntityMonster:
		monster, ok := s.roster.Monster(entityID)
		if !ok {
			return domain.LevelAllocation{}, reject(ReasonUnknownMonster)
		}
		if ownerTrainerID == 0 {
			return domain.LevelAllocation{}, reject(ReasonMonsterOwnerMissing)
		}
		owner, ok := s.roster.Trainer(ownerTrainerID)
		if !ok {
			return domain.LevelAllocation{}, reject(ReasonUnknownTrainer)
		}
		if monster.TrainerID != owner.ID {
			return domain.LevelAllocation{}, reject(ReasonMonsterOwnerMismatch)
		}
		alloc.EntityName = monsterName(monster)
		alloc.TrainerInfo = &domain.TrainerInfo{
			TrainerID:   owner.ID,
			TrainerName: trainerName(owner),
		}

	default:
		return domain.LevelAllocation{}, reject(ReasonUnknownEntityType)
	}

	alloc.ID = s.newID()
	s.levelAllocations = append(s.levelAllocations, alloc)
	s.availableLevels -= levels
	return alloc, nil
}

// RemoveLevelAllocation deletes the allocation and returns its levels to the
// pool. Unknown IDs are ignored so repeated removals are harmless.
func (s *ClaimSession) RemoveLevelAllocation(id int64) bool {
	if s.closed {
		return false
	}
	for i, a := range s.levelAllocations {
		if a.ID == id {
			s.levelAllocations = append(s.levelAllocations[:i:i], s.levelAllocations[i+1:]...)
			s.availableLevels += a.Levels
			return true
		}
	}
	return false
}

// AddCoinAllocation commits coins to a trainer. Coins cannot go to monsters.
func (s *ClaimSession) AddCoinAllocation(trainerID int64, coins int) (domain.CoinAllocation, error) {
	if s.closed {
		return domain.CoinAllocation{}, reject(ReasonSessionClosed)
	}
	if coins < 1 || coins > s.availableCoins {
		return domain.CoinAllocation{}, reject(ReasonCoinsOutOfRange)
	}
	trainer, ok := s.roster.Trainer(trainerID)
	if !ok {
		return domain.CoinAllocation{}, reject(ReasonUnknownTrainer)
	}

	alloc := domain.CoinAllocation{
		ID:          s.newID(),
		TrainerID:   trainer.ID,
		TrainerName: trainerName(trainer),
		Coins:       coins,
	}
	s.coinAllocations = append(s.coinAllocations, alloc)
	s.availableCoins -= coins
	return alloc, nil
}

// RemoveCoinAllocation is the coin counterpart of RemoveLevelAllocation.
func (s *ClaimSession) RemoveCoinAllocation(id int64) bool {
	if s.closed {
		return false
	}
	for i, a := range s.coinAllocations {
		if a.ID == id {
			s.coinAllocations = append(s.coinAllocations[:i:i], s.coinAllocations[i+1:]...)
			s.availableCoins += a.Coins
			return true
		}
	}
	return false
}

// SetItemAssignment points item index at trainerID, replacing any earlier
// choice for that item.
func (s *ClaimSession) SetItemAssignment(index int, trainerID int64) error {
	if s.closed {
		return reject(ReasonSessionClosed)
	}
	if index < 0 || index >= len(s.itemAssignments) {
		return reject(ReasonItemIndexOutOfRange)
	}
	if _, ok := s.roster.Trainer(trainerID); !ok {
		return reject(ReasonUnknownTrainer)
	}
	s.itemAssignments[index] = trainerID
	return nil
}

// ClearItemAssignment empties the slot for index. It reports whether the
// slot held an assignment.
func (s *ClaimSession) ClearItemAssignment(index int) bool {
	if s.closed || index < 0 || index >= len(s.itemAssignments) {
		return false
	}
	had := s.itemAssignments[index] != 0
	s.itemAssignments[index] = 0
	return had
}

// OnClaimAccepted tears the session down after the server applied the claim.
// The session refuses every later mutation.
func (s *ClaimSession) OnClaimAccepted() {
	s.reward = domain.UnclaimedReward{ID: s.reward.ID, ItemsEarned: []domain.RewardItem{}}
	s.availableLevels = 0
	s.availableCoins = 0
	s.levelAllocations = []domain.LevelAllocation{}
	s.coinAllocations = []domain.CoinAllocation{}
	s.itemAssignments = []int64{}
	s.lastRejection = ""
	s.closed = true
}

// OnClaimRejected records why the last submission failed. Allocations are
// kept so the user can retry without re-entering them.
func (s *ClaimSession) OnClaimRejected(reason string) {
	s.lastRejection = reason
}

// Reward returns the reward being claimed.
func (s *ClaimSession) Reward() domain.UnclaimedReward {
	return copyReward(s.reward)
}

// Roster returns the roster the session validates against.
func (s *ClaimSession) Roster() *Roster {
	return s.roster
}

// AvailableLevels is the unallocated part of the level pool.
func (s *ClaimSession) AvailableLevels() int {
	return s.availableLevels
}

// AvailableCoins is the unallocated part of the coin pool.
func (s *ClaimSession) AvailableCoins() int {
	return s.availableCoins
}

// LevelAllocations returns a copy of the active level allocations.
func (s *ClaimSession) LevelAllocations() []domain.LevelAllocation {
	return copyLevelAllocations(s.levelAllocations)
}

// CoinAllocations returns a copy of the active coin allocations.
func (s *ClaimSession) CoinAllocations() []domain.CoinAllocation {
	out := make([]domain.CoinAllocation, len(s.coinAllocations))
	copy(out, s.coinAllocations)
	return out
}

// ItemAssignments returns the trainer chosen for each item by index; 0 means
// the item has not been assigned.
func (s *ClaimSession) ItemAssignments() []int64 {
	out := make([]int64, len(s.itemAssignments))
	copy(out, s.itemAssignments)
	return out
}

// Closed reports whether the claim was accepted.
func (s *ClaimSession) Closed() bool {
	return s.closed
}

// LastRejection is the reason recorded by the most recent OnClaimRejected.
func (s *ClaimSession) LastRejection() string {
	return s.lastRejection
}

func copyLevelAllocations(in []domain.LevelAllocation) []domain.LevelAllocation {
	out := make([]domain.LevelAllocation, len(in))
	for i, a := range in {
		if a.TrainerInfo != nil {
			info := *a.TrainerInfo
			a.TrainerInfo = &info
		}
		out[i] = a
	}
	return out
}

func trainerName(t domain.Trainer) string {
	if t.Name == "" {
		return UnknownTrainerName
	}
	return t.Name
}

func monsterName(m domain.Monster) string {
	if name := m.DisplayName(); name != "" {
		return name
	}
	return UnknownMonsterName
}
