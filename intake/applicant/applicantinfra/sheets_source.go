package applicantinfra

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/pkg/kernel"
)

// GoogleSheetsSource implements applicant.RowSource over the Google Sheets
// API. The first row of the sheet is a header row; columns are located by
// header text, so reviewers can reorder or add columns without breaking sync.
type GoogleSheetsSource struct {
	svc *sheets.Service
}

// NewGoogleSheetsSource creates a row source over an authenticated Sheets
// service.
func NewGoogleSheetsSource(svc *sheets.Service) *GoogleSheetsSource {
	return &GoogleSheetsSource{
		svc: svc,
	}
}

// Fetch pulls the whole sheet: title, header-derived column map, and every
// data row as strings.
func (s *GoogleSheetsSource) Fetch(ctx context.Context, sheetID kernel.SheetID) (*applicant.SheetData, error) {
	meta, err := s.svc.Spreadsheets.Get(string(sheetID)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	resp, err := s.svc.Spreadsheets.Values.Get(string(sheetID), "A1:ZZ").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet values: %w", err)
	}

	if len(resp.Values) == 0 {
		return &applicant.SheetData{
			ID:   sheetID,
			Name: meta.Properties.Title,
		}, nil
	}

	headers := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		headers = append(headers, fmt.Sprint(cell))
	}

	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}

	return &applicant.SheetData{
		ID:      sheetID,
		Name:    meta.Properties.Title,
		Columns: ParseColumns(headers),
		Rows:    rows,
	}, nil
}

// ParseColumns locates the known columns by header text, case-insensitive
// substring match. A column that never matches keeps index zero, which the
// assembler reads as "not present".
func ParseColumns(headers []string) applicant.ColumnMap {
	var cols applicant.ColumnMap

	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))

		switch {
		case strings.Contains(h, "timestamp"):
			cols.Timestamp = i
		case strings.Contains(h, "name"):
			cols.Name = i
		case strings.Contains(h, "email address"):
			cols.Email = i
		case strings.Contains(h, "location"):
			cols.Location = i
		case strings.Contains(h, "phone"):
			cols.Phone = i
		case strings.Contains(h, "resume"):
			cols.Resume = i
		case strings.Contains(h, "materials"):
			cols.Materials = i
		case strings.Contains(h, "status"):
			cols.Status = i
		case strings.Contains(h, "github"):
			cols.GitHub = i
		case strings.Contains(h, "linkedin"):
			cols.LinkedIn = i
		case strings.Contains(h, "portfolio"):
			cols.Portfolio = i
		case strings.Contains(h, "website"):
			cols.Website = i
		case strings.Contains(h, "sent email"):
			cols.SentEmailReceived = i
		case strings.Contains(h, "value reflected"):
			cols.ValueReflected = i
		case strings.Contains(h, "value violated"):
			cols.ValueViolated = i
		case strings.Contains(h, "value in tension") && cols.ValueInTension1 == 0:
			cols.ValueInTension1 = i
		case strings.Contains(h, "value in tension"):
			cols.ValueInTension2 = i
		}
	}

	return cols
}
