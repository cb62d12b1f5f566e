package claim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/TrainerBot_Go/internal/concurrency"
	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/logger"
	"github.com/osse101/TrainerBot_Go/internal/metrics"
	"github.com/osse101/TrainerBot_Go/internal/roster"
	"github.com/osse101/TrainerBot_Go/internal/rewards"
	"github.com/osse101/TrainerBot_Go/internal/validation"
)

// APIClient is the subset of the backend API the claim service needs
type APIClient interface {
	GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	GetUnclaimedRewards(ctx context.Context, discordID string) ([]domain.UnclaimedReward, error)
	ClaimRewards(ctx context.Context, discordID string, req domain.ClaimRequest, idempotencyKey string) (domain.ClaimResult, error)
}

// Service drives one claim session per Discord user
type Service interface {
	ListRewards(ctx context.Context, discordID string) ([]domain.UnclaimedReward, error)
	Roster(ctx context.Context, discordID string) (*rewards.Roster, error)

	Begin(ctx context.Context, discordID string, rewardID int64) (*View, error)
	Status(ctx context.Context, discordID string) (*View, error)

	AddLevels(ctx context.Context, discordID string, entityType domain.EntityType, entityID int64, levels int, ownerTrainerID int64) (domain.LevelAllocation, error)
	RemoveLevels(ctx context.Context, discordID string, allocationID int64) (bool, error)
	AddCoins(ctx context.Context, discordID string, trainerID int64, coins int) (domain.CoinAllocation, error)
	RemoveCoins(ctx context.Context, discordID string, allocationID int64) (bool, error)
	AssignItem(ctx context.Context, discordID string, index int, trainerID int64) error
	UnassignItem(ctx context.Context, discordID string, index int) (bool, error)

	Submit(ctx context.Context, discordID string) (*SubmitResult, error)
	Cancel(ctx context.Context, discordID string) error

	ExpireDrafts(ctx context.Context) (int, error)
}

// SubmitResult describes an accepted claim
type SubmitResult struct {
	Message string
	Request domain.ClaimRequest
}

// activeSession is a claim session held in memory for one user
type activeSession struct {
	session   *rewards.ClaimSession
	userID    int64
	inFlight  bool
	updatedAt time.Time
}

type service struct {
	api      APIClient
	rosters  roster.Loader
	store    Store
	locks    *concurrency.LockManager
	draftTTL time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*activeSession
}

// NewService creates a new claim service
func NewService(api APIClient, rosters roster.Loader, store Store, draftTTL time.Duration) Service {
	return &service{
		api:      api,
		rosters:  rosters,
		store:    store,
		locks:    concurrency.NewLockManager(),
		draftTTL: draftTTL,
		now:      time.Now,
		sessions: make(map[string]*activeSession),
	}
}

// ListRewards returns the user's unclaimed rewards
func (s *service) ListRewards(ctx context.Context, discordID string) ([]domain.UnclaimedReward, error) {
	if _, err := s.api.GetUserByDiscordID(ctx, discordID); err != nil {
		return nil, err
	}
	return s.api.GetUnclaimedRewards(ctx, discordID)
}

// Roster returns the roster of the active session, or the user's current
// roster when no session is open
func (s *service) Roster(ctx context.Context, discordID string) (*rewards.Roster, error) {
	if active := s.cached(discordID); active != nil {
		return active.session.Roster(), nil
	}
	user, err := s.api.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	return s.rosters.Load(ctx, discordID, user.ID)
}

// Begin opens a fresh session for rewardID, replacing any open one
func (s *service) Begin(ctx context.Context, discordID string, rewardID int64) (*View, error) {
	unlock := s.locks.Lock(discordID)
	defer unlock()

	log := logger.FromContext(ctx)

	if active := s.cached(discordID); active != nil && active.inFlight {
		return nil, domain.ErrClaimInFlight
	}

	user, err := s.api.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	unclaimed, err := s.api.GetUnclaimedRewards(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rewards: %w", err)
	}

	var reward *domain.UnclaimedReward
	for i := range unclaimed {
		if unclaimed[i].ID == rewardID && !unclaimed[i].IsClaimed {
			reward = &unclaimed[i]
			break
		}
	}
	if reward == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrRewardNotFound, rewardID)
	}

	// a new claim always sees the current roster
	s.rosters.Invalidate(user.ID)
	r, err := s.rosters.Load(ctx, discordID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	session := rewards.BeginClaim(*reward, r)
	active := &activeSession{session: session, userID: user.ID}
	if err := s.persist(ctx, discordID, active); err != nil {
		return nil, err
	}

	metrics.ClaimSessionsStarted.Inc()
	log.Info("Claim session started", "discord_id", discordID, "reward_id", rewardID,
		"levels", reward.LevelsEarned, "coins", reward.CoinsEarned, "items", len(reward.ItemsEarned))

	return newView(session), nil
}

// Status returns the current state of the user's session
func (s *service) Status(ctx context.Context, discordID string) (*View, error) {
	var view *View
	err := s.withSession(ctx, discordID, false, func(active *activeSession) error {
		view = newView(active.session)
		return nil
	})
	return view, err
}

// AddLevels allocates levels to a trainer or one of their monsters
func (s *service) AddLevels(ctx context.Context, discordID string, entityType domain.EntityType, entityID int64, levels int, ownerTrainerID int64) (domain.LevelAllocation, error) {
	var alloc domain.LevelAllocation
	err := s.withSession(ctx, discordID, true, func(active *activeSession) error {
		var err error
		alloc, err = active.session.AddLevelAllocation(entityType, entityID, levels, ownerTrainerID)
		return err
	})
	return alloc, err
}

// RemoveLevels undoes a level allocation
func (s *service) RemoveLevels(ctx context.Context, discordID string, allocationID int64) (bool, error) {
	var removed bool
	err := s.withSession(ctx, discordID, true, func(active *activeSession) error {
		removed = active.session.RemoveLevelAllocation(allocationID)
		return nil
	})
	return removed, err
}

// AddCoins allocates coins to a trainer
func (s *service) AddCoins(ctx context.Context, discordID string, trainerID int64, coins int) (domain.CoinAllocation, error) {
	var alloc domain.CoinAllocation
	err := s.withSession(ctx, discordID, true, func(active *activeSession) error {
		var err error
		alloc, err = active.session.AddCoinAllocation(trainerID, coins)
		return err
	})
	return alloc, err
}

// RemoveCoins undoes a coin allocation
func (s *service) RemoveCoins(ctx context.Context, discordID string, allocationID int64) (bool, error) {
	var removed bool
	err := s.withSession(ctx, discordID, true, func(active *activeSession) error {
		removed = active.session.RemoveCoinAllocation(allocationID)
		return nil
	})
	return removed, err
}

// AssignItem gives the item at index to a trainer
func (s *service) AssignItem(ctx context.Context, discordID string, index int, trainerID int64) error {
	return s.withSession(ctx, discordID, true, func(active *activeSession) error {
		return active.session.SetItemAssignment(index, trainerID)
	})
}

// UnassignItem clears the trainer for the item at index
func (s *service) UnassignItem(ctx context.Context, discordID string, index int) (bool, error) {
	var cleared bool
	err := s.withSession(ctx, discordID, true, func(active *activeSession) error {
		cleared = active.session.ClearItemAssignment(index)
		return nil
	})
	return cleared, err
}

// Submit sends the claim. Only one submission per user may be outstanding;
// the per-user lock is released during the backend call so a concurrent
// submit fails fast with domain.ErrClaimInFlight instead of queueing.
func (s *service) Submit(ctx context.Context, discordID string) (*SubmitResult, error) {
	log := logger.FromContext(ctx)

	var (
		req    domain.ClaimRequest
		active *activeSession
	)
	err := s.withSession(ctx, discordID, true, func(a *activeSession) error {
		built, err := a.session.BuildClaimRequest(a.userID)
		if err != nil {
			return err
		}
		if err := validation.GetValidator().ValidateClaimRequest(built); err != nil {
			return err
		}
		a.inFlight = true
		req = built
		active = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	idempotencyKey := uuid.NewString()
	log.Info("Submitting claim", "discord_id", discordID, "reward_id", req.AdventureLogID, "idempotency_key", idempotencyKey)

	start := s.now()
	result, callErr := s.api.ClaimRewards(ctx, discordID, req, idempotencyKey)
	metrics.ClaimSubmitDuration.Observe(time.Since(start).Seconds())

	unlock := s.locks.Lock(discordID)
	defer unlock()
	active.inFlight = false

	if callErr == nil && !result.Success {
		callErr = &domain.SubmissionError{StatusCode: 200, Message: result.Message}
	}

	if callErr != nil {
		reason := callErr.Error()
		var subErr *domain.SubmissionError
		if errors.As(callErr, &subErr) && subErr.Message != "" {
			reason = subErr.Message
		}
		active.session.OnClaimRejected(reason)
		if err := s.persist(ctx, discordID, active); err != nil {
			log.Error("Failed to save draft after rejected claim", "discord_id", discordID, "error", err)
		}

		outcome := metrics.OutcomeRejected
		if subErr == nil || subErr.StatusCode == 0 {
			outcome = metrics.OutcomeFailed
		}
		metrics.ClaimSubmissions.WithLabelValues(outcome).Inc()
		log.Warn("Claim not accepted", "discord_id", discordID, "reward_id", req.AdventureLogID, "reason", reason)
		return nil, callErr
	}

	active.session.OnClaimAccepted()
	s.forget(discordID)
	if err := s.store.DeleteDraft(ctx, discordID); err != nil {
		log.Error("Failed to delete draft after accepted claim", "discord_id", discordID, "error", err)
	}
	s.rosters.Invalidate(active.userID)

	metrics.ClaimSubmissions.WithLabelValues(metrics.OutcomeAccepted).Inc()
	log.Info("Claim accepted", "discord_id", discordID, "reward_id", req.AdventureLogID)

	return &SubmitResult{Message: result.Message, Request: req}, nil
}

// Cancel discards the user's session without contacting the backend
func (s *service) Cancel(ctx context.Context, discordID string) error {
	unlock := s.locks.Lock(discordID)
	defer unlock()

	if active := s.cached(discordID); active != nil && active.inFlight {
		return domain.ErrClaimInFlight
	}

	hadSession := s.forget(discordID)
	_, err := s.store.GetDraft(ctx, discordID)
	if errors.Is(err, domain.ErrDraftNotFound) && !hadSession {
		return domain.ErrNoActiveSession
	}

	if err := s.store.DeleteDraft(ctx, discordID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	logger.FromContext(ctx).Info("Claim session cancelled", "discord_id", discordID)
	return nil
}

// ExpireDrafts drops drafts and in-memory sessions untouched for longer
// than the draft TTL. A session whose user lock is held, or whose claim is
// in flight, is left alone along with its stored draft.
func (s *service) ExpireDrafts(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.draftTTL)

	s.mu.Lock()
	discordIDs := make([]string, 0, len(s.sessions))
	for discordID := range s.sessions {
		discordIDs = append(discordIDs, discordID)
	}
	s.mu.Unlock()

	var keep []string
	for _, discordID := range discordIDs {
		if !s.expireSession(discordID, cutoff) {
			keep = append(keep, discordID)
		}
	}

	removed, err := s.store.DeleteDraftsBefore(ctx, cutoff, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to expire drafts: %w", err)
	}
	metrics.DraftsExpired.Add(float64(removed))
	return removed, nil
}

// expireSession forgets the in-memory session when it is idle past cutoff.
// It returns false when the user is busy and their draft must be kept.
func (s *service) expireSession(discordID string, cutoff time.Time) bool {
	unlock, ok := s.locks.TryLock(discordID)
	if !ok {
		return false
	}
	defer unlock()

	active := s.cached(discordID)
	if active == nil {
		return true
	}
	if active.inFlight {
		return false
	}
	if active.updatedAt.Before(cutoff) {
		s.forget(discordID)
	}
	return true
}

// withSession runs fn on the user's session under the per-user lock,
// restoring it from the draft store when it is not in memory. When mutate
// is set the session is refused while a submission is in flight and saved
// after fn succeeds.
func (s *service) withSession(ctx context.Context, discordID string, mutate bool, fn func(*activeSession) error) error {
	unlock := s.locks.Lock(discordID)
	defer unlock()

	active, err := s.load(ctx, discordID)
	if err != nil {
		return err
	}
	if mutate && active.inFlight {
		return domain.ErrClaimInFlight
	}

	if err := fn(active); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			metrics.AllocationRejections.WithLabelValues(verr.Reason).Inc()
		}
		return err
	}

	if mutate {
		return s.persist(ctx, discordID, active)
	}
	return nil
}

// load returns the in-memory session or restores it from the store.
// Callers hold the per-user lock.
func (s *service) load(ctx context.Context, discordID string) (*activeSession, error) {
	if active := s.cached(discordID); active != nil {
		return active, nil
	}

	draft, err := s.store.GetDraft(ctx, discordID)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, domain.ErrNoActiveSession
	}
	if errors.Is(err, domain.ErrCorruptDraft) {
		logger.FromContext(ctx).Warn("Discarding unreadable claim draft", "discord_id", discordID, "error", err)
		_ = s.store.DeleteDraft(ctx, discordID)
		return nil, fmt.Errorf("%w: %w", domain.ErrNoActiveSession, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	r, err := s.rosters.Load(ctx, discordID, draft.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	session, err := rewards.RestoreSession(draft.Snapshot, r)
	if err != nil {
		logger.FromContext(ctx).Warn("Discarding corrupt claim draft", "discord_id", discordID, "error", err)
		_ = s.store.DeleteDraft(ctx, discordID)
		return nil, fmt.Errorf("%w: %w", domain.ErrNoActiveSession, err)
	}

	active := &activeSession{session: session, userID: draft.UserID, updatedAt: draft.UpdatedAt}
	s.remember(discordID, active)
	return active, nil
}

// persist saves the session as a draft and keeps it in memory
func (s *service) persist(ctx context.Context, discordID string, active *activeSession) error {
	active.updatedAt = s.now()
	draft := &Draft{
		DiscordID: discordID,
		UserID:    active.userID,
		RewardID:  active.session.Reward().ID,
		Snapshot:  active.session.Snapshot(),
		UpdatedAt: active.updatedAt,
	}
	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	s.remember(discordID, active)
	return nil
}

func (s *service) cached(discordID string) *activeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[discordID]
}

func (s *service) remember(discordID string, active *activeSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[discordID] = active
	metrics.ClaimSessionsActive.Set(float64(len(s.sessions)))
}

func (s *service) forget(discordID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[discordID]
	delete(s.sessions, discordID)
	metrics.ClaimSessionsActive.Set(float64(len(s.sessions)))
	return ok
}
