package applicantsrv

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/pkg/errx"
	"github.com/talentops/funnel/pkg/kernel"
	"github.com/talentops/funnel/pkg/logx"
)

// DefaultConcurrency bounds how many rows are assembled at once. Each row
// performs up to two document fetches, so this caps outbound calls to the
// document source.
const DefaultConcurrency = 4

// IntakeService pulls applicant sheets, assembles canonical records, and
// drives persistence and notification. Rows are independent: one bad row is
// skipped and logged, never aborting the batch.
type IntakeService struct {
	rows      applicant.RowSource
	repo      applicant.Repository
	notifier  applicant.Notifier
	seen      applicant.SeenStore
	embedder  applicant.Embedder
	archiver  applicant.Archiver
	queue     applicant.SyncQueue
	assembler *Assembler

	concurrency int
}

// NewIntakeService creates the intake service. The embedder, archiver, and
// queue are optional; pass nil to disable similarity search, document
// archiving, or background sync respectively.
func NewIntakeService(
	rows applicant.RowSource,
	repo applicant.Repository,
	notifier applicant.Notifier,
	seen applicant.SeenStore,
	embedder applicant.Embedder,
	archiver applicant.Archiver,
	queue applicant.SyncQueue,
	documents applicant.DocumentSource,
) *IntakeService {
	return &IntakeService{
		rows:        rows,
		repo:        repo,
		notifier:    notifier,
		seen:        seen,
		embedder:    embedder,
		archiver:    archiver,
		queue:       queue,
		assembler:   NewAssembler(documents),
		concurrency: DefaultConcurrency,
	}
}

// SyncSheet pulls every row of the sheet and processes them with bounded
// concurrency. The returned result counts rows that synced, were skipped as
// unrecoverable, and triggered a first-seen notification.
func (s *IntakeService) SyncSheet(ctx context.Context, sheetID kernel.SheetID) (*applicant.SyncResult, error) {
	sheet, err := s.rows.Fetch(ctx, sheetID)
	if err != nil {
		return nil, applicant.ErrRegistry.NewWithCause(applicant.CodeSheetUnavailable, err).
			WithDetail("sheet_id", sheetID.String())
	}

	logx.Infof("Syncing sheet %s (%s): %d rows", sheetID, sheet.Name, len(sheet.Rows))

	result := &applicant.SyncResult{
		SheetID:   sheetID,
		SheetName: sheet.Name,
		Rows:      len(sheet.Rows),
	}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, row := range sheet.Rows {
		g.Go(func() error {
			synced, notified, err := s.syncRow(gctx, row, sheet)
			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				logx.Warnf("skipping row %d of sheet %s: %v", i, sheetID, err)
				result.Skipped++
				return nil
			}
			if synced {
				result.Synced++
			}
			if notified {
				result.Notified++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errx.Wrap(err, "sheet sync interrupted", errx.TypeInternal)
	}

	return result, nil
}

// syncRow assembles, persists, and (for first-seen applicants) announces one
// row. Embedding and archiving failures degrade silently; only assembly and
// persistence failures skip the row.
func (s *IntakeService) syncRow(ctx context.Context, row []string, sheet *applicant.SheetData) (synced, notified bool, err error) {
	record, err := s.assembler.Build(ctx, row, sheet.Columns, sheet.Name, sheet.ID)
	if err != nil {
		return false, false, err
	}

	if s.embedder != nil && record.MaterialsContents != "" {
		embedding, err := s.embedder.Generate(ctx, record.MaterialsContents)
		if err != nil {
			logx.Warnf("embedding failed for %s: %v", record.Email, err)
		} else {
			record.MaterialsEmbedding = embedding
		}
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return false, false, errx.Wrap(err, "failed to upsert applicant", errx.TypeInternal)
	}

	if s.archiver != nil && record.MaterialsContents != "" {
		key := fmt.Sprintf("%s/%s/materials.txt", sheet.ID, record.Email)
		if err := s.archiver.Archive(ctx, key, record.MaterialsContents); err != nil {
			logx.Warnf("archive failed for %s: %v", record.Email, err)
		}
	}

	notified, err = s.maybeNotify(ctx, record)
	if err != nil {
		// The record is already persisted; a notification failure is not a
		// reason to skip the row.
		logx.Warnf("notification failed for %s: %v", record.Email, err)
	}

	return true, notified, nil
}

func (s *IntakeService) maybeNotify(ctx context.Context, record *applicant.Applicant) (bool, error) {
	if s.notifier == nil || s.seen == nil {
		return false, nil
	}

	seen, err := s.seen.Seen(ctx, record.SheetID, record.Email)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}

	if err := s.notifier.Notify(ctx, record); err != nil {
		return false, err
	}

	if err := s.seen.MarkSeen(ctx, record.SheetID, record.Email); err != nil {
		return true, err
	}

	return true, nil
}

// GetApplicant retrieves one record by sheet and email.
func (s *IntakeService) GetApplicant(ctx context.Context, sheetID kernel.SheetID, email kernel.Email) (*applicant.Applicant, error) {
	if email.IsEmpty() {
		return nil, applicant.ErrInvalidRequest().WithDetail("email", "missing or empty")
	}

	return s.repo.GetByEmail(ctx, sheetID, email)
}

// ListApplicants retrieves records with pagination.
func (s *IntakeService) ListApplicants(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[applicant.Applicant], error) {
	if pagination.Page < 1 || pagination.PageSize < 1 {
		return nil, applicant.ErrInvalidPagination().
			WithDetail("page", pagination.Page).
			WithDetail("page_size", pagination.PageSize)
	}

	return s.repo.List(ctx, pagination)
}

// SearchApplicants runs a similarity search over materials embeddings.
func (s *IntakeService) SearchApplicants(ctx context.Context, query string, limit int) ([]applicant.SearchResult, error) {
	if query == "" {
		return nil, applicant.ErrInvalidRequest().WithDetail("query", "missing or empty")
	}
	if s.embedder == nil {
		return nil, applicant.ErrSearchFailed().WithDetail("reason", "similarity search is not configured")
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	embedding, err := s.embedder.Generate(ctx, query)
	if err != nil {
		return nil, applicant.ErrRegistry.NewWithCause(applicant.CodeSearchFailed, err)
	}

	return s.repo.SearchBySimilarity(ctx, embedding, limit)
}
