package roster

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/logger"
	"github.com/osse101/TrainerBot_Go/internal/metrics"
	"github.com/osse101/TrainerBot_Go/internal/rewards"
)

// Source is the subset of the backend API the loader needs
type Source interface {
	GetTrainers(ctx context.Context, discordID string, userID int64) ([]domain.Trainer, error)
	GetMonsters(ctx context.Context, discordID string, trainerID int64) ([]domain.Monster, error)
}

// Loader fetches and caches a user's roster
type Loader interface {
	Load(ctx context.Context, discordID string, userID int64) (*rewards.Roster, error)
	Invalidate(userID int64)
}

// CacheSchemaVersion is bumped when the cached roster shape changes
const CacheSchemaVersion = "1.0"

type cachedRoster struct {
	Version  string
	Roster   *rewards.Roster
	CachedAt time.Time
}

type loader struct {
	source Source
	cache  *expirable.LRU[string, *cachedRoster]
}

// NewLoader creates a roster loader caching up to size rosters for ttl
func NewLoader(source Source, size int, ttl time.Duration) Loader {
	return &loader{
		source: source,
		cache:  expirable.NewLRU[string, *cachedRoster](size, nil, ttl),
	}
}

func cacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Load returns the user's trainers and every monster they own. Monsters are
// fetched per trainer and stamped with that trainer's ID. A trainer whose
// monsters cannot be fetched is kept without monsters.
func (l *loader) Load(ctx context.Context, discordID string, userID int64) (*rewards.Roster, error) {
	log := logger.FromContext(ctx)
	key := cacheKey(userID)

	if entry, ok := l.cache.Get(key); ok {
		if entry.Version == CacheSchemaVersion {
			metrics.RosterCacheTotal.WithLabelValues(metrics.CacheResultHit).Inc()
			return entry.Roster, nil
		}
		l.cache.Remove(key)
	}
	metrics.RosterCacheTotal.WithLabelValues(metrics.CacheResultMiss).Inc()

	trainers, err := l.source.GetTrainers(ctx, discordID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trainers: %w", err)
	}

	var monsters []domain.Monster
	for _, trainer := range trainers {
		owned, err := l.source.GetMonsters(ctx, discordID, trainer.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("Failed to load monsters for trainer", "trainer_id", trainer.ID, "error", err)
			continue
		}
		for _, m := range owned {
			m.TrainerID = trainer.ID
			monsters = append(monsters, m)
		}
	}

	r := rewards.NewRoster(trainers, monsters)
	l.cache.Add(key, &cachedRoster{
		Version:  CacheSchemaVersion,
		Roster:   r,
		CachedAt: time.Now(),
	})

	t, m := r.Len()
	log.Debug("Roster loaded", "user_id", userID, "trainers", t, "monsters", m)
	return r, nil
}

// Invalidate drops the cached roster so the next Load refetches it
func (l *loader) Invalidate(userID int64) {
	l.cache.Remove(cacheKey(userID))
}
