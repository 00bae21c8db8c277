package worker

import (
	"context"
	"time"

	"github.com/talentops/funnel/intake/applicant/applicantsrv"
	"github.com/talentops/funnel/pkg/kernel"
	"github.com/talentops/funnel/pkg/logx"
)

// Scheduler re-queues a fixed set of sheets on an interval, so records and
// triage statuses stay current without anyone calling the sync endpoint.
type Scheduler struct {
	service  *applicantsrv.IntakeService
	sheets   []kernel.SheetID
	interval time.Duration
}

func NewScheduler(service *applicantsrv.IntakeService, sheets []kernel.SheetID, interval time.Duration) *Scheduler {
	return &Scheduler{
		service:  service,
		sheets:   sheets,
		interval: interval,
	}
}

// Start enqueues all configured sheets immediately and then on every tick.
func (s *Scheduler) Start(ctx context.Context) {
	if len(s.sheets) == 0 {
		logx.Info("No sheets configured for scheduled sync")
		return
	}

	logx.Infof("Scheduling sync of %d sheets every %s", len(s.sheets), s.interval)

	go func() {
		s.enqueueAll(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.enqueueAll(ctx)
			}
		}
	}()
}

func (s *Scheduler) enqueueAll(ctx context.Context) {
	for _, sheetID := range s.sheets {
		if _, err := s.service.EnqueueSync(ctx, sheetID); err != nil {
			logx.Errorf("Failed to enqueue scheduled sync for sheet %s: %v", sheetID, err)
		}
	}
}
