package applicant

import (
	"context"
	"time"

	"github.com/talentops/funnel/pkg/kernel"
)

// RowSource supplies the raw rows of an applicant sheet.
type RowSource interface {
	// Fetch returns the sheet's rows plus the column map derived from its
	// header row.
	Fetch(ctx context.Context, sheetID kernel.SheetID) (*SheetData, error)
}

// DocumentSource supplies the text of a referenced document. A missing or
// unreadable document yields empty text, not an error; absent materials are
// an expected state of real submissions.
type DocumentSource interface {
	Fetch(ctx context.Context, ref string) (string, error)
}

// Repository persists assembled applicant records.
type Repository interface {
	// Upsert inserts or replaces the record keyed by (sheet_id, email).
	Upsert(ctx context.Context, a *Applicant) error

	// GetByEmail retrieves a record by sheet and email.
	GetByEmail(ctx context.Context, sheetID kernel.SheetID, email kernel.Email) (*Applicant, error)

	// List retrieves records with pagination, most recent submissions first.
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Applicant], error)

	// SearchBySimilarity returns the records whose materials embedding is
	// closest to the query embedding.
	SearchBySimilarity(ctx context.Context, embedding []float32, limit int) ([]SearchResult, error)
}

// Notifier announces one newly seen applicant. Accepts one record per call.
type Notifier interface {
	Notify(ctx context.Context, a *Applicant) error
}

// SeenStore remembers which applicants have already been announced so that
// repeated sync runs do not notify twice.
type SeenStore interface {
	Seen(ctx context.Context, sheetID kernel.SheetID, email kernel.Email) (bool, error)
	MarkSeen(ctx context.Context, sheetID kernel.SheetID, email kernel.Email) error
}

// Embedder produces the embedding vector used for similarity search.
type Embedder interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// Archiver stores a copy of fetched document text for audit.
type Archiver interface {
	Archive(ctx context.Context, key string, text string) error
}

// SyncQueue queues sheet syncs for background processing.
type SyncQueue interface {
	// Enqueue adds a job to the ready queue.
	Enqueue(ctx context.Context, job *SyncJob) error

	// EnqueueDelayed schedules a job for later processing (for retries).
	EnqueueDelayed(ctx context.Context, job *SyncJob, delay time.Duration) error

	// Dequeue blocks up to timeout for the next job; (nil, nil) on timeout.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// MoveDelayedToReady moves due delayed jobs onto the ready queue.
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready jobs.
	Size(ctx context.Context) (int64, error)
}
