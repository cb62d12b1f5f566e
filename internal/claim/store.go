package claim

import (
	"context"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/rewards"
)

// Draft is a persisted, not yet submitted claim session
type Draft struct {
	DiscordID string
	UserID    int64
	RewardID  int64
	Snapshot  rewards.Snapshot
	UpdatedAt time.Time
}

// Store persists drafts between bot restarts
type Store interface {
	SaveDraft(ctx context.Context, draft *Draft) error
	// GetDraft returns domain.ErrDraftNotFound when the user has no draft
	GetDraft(ctx context.Context, discordID string) (*Draft, error)
	DeleteDraft(ctx context.Context, discordID string) error
	// DeleteDraftsBefore removes drafts updated before cutoff, except those
	// owned by the Discord IDs in keep
	DeleteDraftsBefore(ctx context.Context, cutoff time.Time, keep []string) (int, error)
}

type memoryStore struct {
	lru *expirable.LRU[string, *Draft]
}

// NewMemoryStore keeps up to size drafts in process memory for ttl.
// Drafts are lost on restart.
func NewMemoryStore(size int, ttl time.Duration) Store {
	return &memoryStore{
		lru: expirable.NewLRU[string, *Draft](size, nil, ttl),
	}
}

func (s *memoryStore) SaveDraft(_ context.Context, draft *Draft) error {
	copied := *draft
	s.lru.Add(draft.DiscordID, &copied)
	return nil
}

func (s *memoryStore) GetDraft(_ context.Context, discordID string) (*Draft, error) {
	draft, ok := s.lru.Get(discordID)
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *memoryStore) DeleteDraft(_ context.Context, discordID string) error {
	s.lru.Remove(discordID)
	return nil
}

func (s *memoryStore) DeleteDraftsBefore(_ context.Context, cutoff time.Time, keep []string) (int, error) {
	removed := 0
	for _, key := range s.lru.Keys() {
		if slices.Contains(keep, key) {
			continue
		}
		draft, ok := s.lru.Peek(key)
		if ok && draft.UpdatedAt.Before(cutoff) {
			s.lru.Remove(key)
			removed++
		}
	}
	return removed, nil
}
