package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/TrainerBot_Go/internal/claim"
	"github.com/osse101/TrainerBot_Go/internal/domain"
)

var _ claim.Store = (*DraftRepository)(nil)

// DraftRepository persists claim drafts in PostgreSQL
type DraftRepository struct {
	db *pgxpool.Pool
}

// NewDraftRepository creates a new DraftRepository
func NewDraftRepository(db *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{db: db}
}

// SaveDraft inserts or replaces the user's draft
func (r *DraftRepository) SaveDraft(ctx context.Context, draft *claim.Draft) error {
	snapshot, err := json.Marshal(draft.Snapshot)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalSnapshot, err)
	}

	query := `
		INSERT INTO claim_drafts (discord_id, user_id, reward_id, snapshot, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (discord_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    reward_id = EXCLUDED.reward_id,
		    snapshot = EXCLUDED.snapshot,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query, draft.DiscordID, draft.UserID, draft.RewardID, snapshot, draft.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveDraft, err)
	}
	return nil
}

// GetDraft loads the user's draft or returns domain.ErrDraftNotFound
func (r *DraftRepository) GetDraft(ctx context.Context, discordID string) (*claim.Draft, error) {
	query := `
		SELECT user_id, reward_id, snapshot, updated_at
		FROM claim_drafts
		WHERE discord_id = $1
	`

	draft := &claim.Draft{DiscordID: discordID}
	var snapshot []byte
	err := r.db.QueryRow(ctx, query, discordID).Scan(&draft.UserID, &draft.RewardID, &snapshot, &draft.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDraft, err)
	}

	if err := json.Unmarshal(snapshot, &draft.Snapshot); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ErrMsgFailedToUnmarshalSnapshot, domain.ErrCorruptDraft, err)
	}
	return draft, nil
}

// DeleteDraft removes the user's draft. Missing drafts are not an error.
func (r *DraftRepository) DeleteDraft(ctx context.Context, discordID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM claim_drafts WHERE discord_id = $1`, discordID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteDraft, err)
	}
	return nil
}

// DeleteDraftsBefore removes drafts last updated before cutoff, skipping
// the Discord IDs in keep
func (r *DraftRepository) DeleteDraftsBefore(ctx context.Context, cutoff time.Time, keep []string) (int, error) {
	// a NULL array would make the ALL comparison NULL and match nothing
	if keep == nil {
		keep = []string{}
	}

	query := `
		DELETE FROM claim_drafts
		WHERE updated_at < $1
		  AND discord_id <> ALL($2::text[])
	`
	tag, err := r.db.Exec(ctx, query, cutoff, keep)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToExpireDrafts, err)
	}
	return int(tag.RowsAffected()), nil
}
