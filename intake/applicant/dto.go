package applicant

import (
	"time"

	"github.com/talentops/funnel/pkg/kernel"
)

// ColumnMap maps logical applicant fields to zero-based column positions in
// a sheet row. For optional columns the zero value means "column not
// present"; the mandatory columns (Timestamp, Name, Email) are always at
// valid indices in a well-formed sheet.
type ColumnMap struct {
	Timestamp         int
	Name              int
	Email             int
	Location          int
	Phone             int
	GitHub            int
	LinkedIn          int
	Portfolio         int
	Website           int
	Resume            int
	Materials         int
	Status            int
	SentEmailReceived int
	ValueReflected    int
	ValueViolated     int
	ValueInTension1   int
	ValueInTension2   int
}

// SheetData is one applicant sheet's worth of raw rows, as returned by a
// RowSource. Rows exclude the header row the ColumnMap was derived from.
type SheetData struct {
	ID      kernel.SheetID
	Name    string
	Columns ColumnMap
	Rows    [][]string
}

// ChatText mirrors the text object of block-formatted chat messages.
type ChatText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatBlock is a single block of a chat notification.
type ChatBlock struct {
	Type     string     `json:"type"`
	Text     *ChatText  `json:"text,omitempty"`
	Elements []ChatText `json:"elements,omitempty"`
}

// ChatMessage is the webhook payload for one applicant notification.
type ChatMessage struct {
	Blocks []ChatBlock `json:"blocks"`
}

const (
	ChatBlockSection = "section"
	ChatBlockContext = "context"
	ChatTextMarkdown = "mrkdwn"
)

// SyncResult summarizes one sheet sync run.
type SyncResult struct {
	SheetID   kernel.SheetID `json:"sheet_id"`
	SheetName string         `json:"sheet_name"`
	Rows      int            `json:"rows"`
	Synced    int            `json:"synced"`
	Skipped   int            `json:"skipped"`
	Notified  int            `json:"notified"`
}

// SyncJob is one queued request to sync a sheet.
type SyncJob struct {
	ID         string         `json:"id"`
	SheetID    kernel.SheetID `json:"sheet_id"`
	Attempts   int            `json:"attempts"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
}

// SearchResult is one similarity-search hit.
type SearchResult struct {
	Applicant Applicant `json:"applicant"`
	Score     float64   `json:"score"`
}
