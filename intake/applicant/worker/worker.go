package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/intake/applicant/applicantsrv"
	"github.com/talentops/funnel/pkg/logx"
)

const (
	maxAttempts = 3
	retryDelay  = 2 * time.Minute
)

// SyncWorker consumes queued sheet syncs. A failed sync is re-queued with a
// delay up to maxAttempts; sheets are independent so one failing sheet never
// blocks the others.
type SyncWorker struct {
	service *applicantsrv.IntakeService
	queue   applicant.SyncQueue
	workers int
}

func NewSyncWorker(service *applicantsrv.IntakeService, queue applicant.SyncQueue, workers int) *SyncWorker {
	return &SyncWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d sync workers", w.workers)

	// Start delayed job mover
	go w.moveDelayedJobs(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *SyncWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, no jobs available
			if len(data) == 0 {
				continue
			}

			var job applicant.SyncJob
			if err := json.Unmarshal(data, &job); err != nil {
				logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Worker %d syncing sheet %s (job %s)", workerID, job.SheetID, job.ID)
			result, err := w.service.SyncSheet(ctx, job.SheetID)
			if err != nil {
				w.retryJob(ctx, &job, err)
				continue
			}

			logx.Infof("Worker %d synced sheet %s: %d rows, %d synced, %d skipped, %d notified",
				workerID, job.SheetID, result.Rows, result.Synced, result.Skipped, result.Notified)
		}
	}
}

func (w *SyncWorker) retryJob(ctx context.Context, job *applicant.SyncJob, cause error) {
	job.Attempts++
	if job.Attempts >= maxAttempts {
		logx.Errorf("Sync job %s for sheet %s failed after %d attempts: %v",
			job.ID, job.SheetID, job.Attempts, cause)
		return
	}

	logx.Warnf("Sync job %s for sheet %s failed (attempt %d), retrying: %v",
		job.ID, job.SheetID, job.Attempts, cause)
	if err := w.queue.EnqueueDelayed(ctx, job, retryDelay); err != nil {
		logx.Errorf("Failed to re-queue sync job %s: %v", job.ID, err)
	}
}

func (w *SyncWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed sync jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed sync jobs to ready queue", count)
			}
		}
	}
}
