package applicantsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/pkg/kernel"
	"github.com/talentops/funnel/pkg/logx"
)

// EnqueueSync queues a sheet for background processing instead of syncing it
// inline. The sync worker picks the job up.
func (s *IntakeService) EnqueueSync(ctx context.Context, sheetID kernel.SheetID) (*applicant.SyncJob, error) {
	if s.queue == nil {
		return nil, applicant.ErrSyncFailed().WithDetail("reason", "background sync is not configured")
	}

	job := &applicant.SyncJob{
		ID:         uuid.NewString(),
		SheetID:    sheetID,
		EnqueuedAt: time.Now().UTC(),
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return nil, applicant.ErrRegistry.NewWithCause(applicant.CodeSyncFailed, err).
			WithDetail("sheet_id", sheetID.String())
	}

	logx.Infof("Queued sync job %s for sheet %s", job.ID, sheetID)
	return job, nil
}
