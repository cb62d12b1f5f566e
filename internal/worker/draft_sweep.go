package worker

import (
	"context"

	"github.com/osse101/TrainerBot_Go/internal/logger"
)

// DraftExpirer removes stale claim drafts
type DraftExpirer interface {
	ExpireDrafts(ctx context.Context) (int, error)
}

// DraftSweepJob expires abandoned claim sessions
type DraftSweepJob struct {
	expirer DraftExpirer
}

// NewDraftSweepJob creates a new DraftSweepJob
func NewDraftSweepJob(expirer DraftExpirer) *DraftSweepJob {
	return &DraftSweepJob{expirer: expirer}
}

// Name implements Job
func (j *DraftSweepJob) Name() string {
	return JobNameDraftSweep
}

// Process implements Job
func (j *DraftSweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	removed, err := j.expirer.ExpireDrafts(ctx)
	if err != nil {
		log.Error(LogMsgDraftSweepFailed, "error", err)
		return err
	}
	if removed > 0 {
		log.Info(LogMsgDraftSweepCompleted, "removed", removed)
	}
	return nil
}
