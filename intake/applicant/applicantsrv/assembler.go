package applicantsrv

import (
	"context"
	"strings"
	"time"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/internal/docparse"
	"github.com/talentops/funnel/internal/handle"
	"github.com/talentops/funnel/internal/phonenorm"
	"github.com/talentops/funnel/pkg/kernel"
	"github.com/talentops/funnel/pkg/logx"
)

// The sheet records local times at a fixed UTC offset; the offset is
// appended before parsing and the result converted to UTC.
const (
	sheetUTCOffset    = " -08:00"
	submittedAtLayout = "1/2/2006 15:04:05 -07:00"
)

// Assembler builds one canonical applicant record from one sheet row. It is
// stateless and reentrant; the only external effect is the document fetch.
type Assembler struct {
	documents applicant.DocumentSource
}

// NewAssembler creates an assembler over the given document source.
func NewAssembler(documents applicant.DocumentSource) *Assembler {
	return &Assembler{
		documents: documents,
	}
}

// Build assembles the applicant record for a row. The two unrecoverable
// conditions are a row too short to hold the identity columns and an
// unparseable submission timestamp; everything else degrades to the
// documented empty default.
func (as *Assembler) Build(ctx context.Context, row []string, cols applicant.ColumnMap, sheetName string, sheetID kernel.SheetID) (*applicant.Applicant, error) {
	if len(row) <= cols.Timestamp || len(row) <= cols.Name || len(row) <= cols.Email {
		return nil, applicant.ErrMalformedRow().
			WithDetail("row_length", len(row)).
			WithDetail("sheet_id", sheetID.String())
	}

	submittedAt, err := time.Parse(submittedAtLayout, strings.TrimSpace(row[cols.Timestamp])+sheetUTCOffset)
	if err != nil {
		return nil, applicant.ErrRegistry.NewWithCause(applicant.CodeBadTimestamp, err).
			WithDetail("value", row[cols.Timestamp]).
			WithDetail("sheet_id", sheetID.String())
	}

	status := applicant.NormalizeStatus(optional(row, cols.Status))
	if status == "" {
		status = applicant.StatusNeedsTriage
	}

	var valuesInTension []string
	if v := strings.ToLower(strings.TrimSpace(optional(row, cols.ValueInTension1))); v != "" {
		valuesInTension = append(valuesInTension, v)
	}
	if v := strings.ToLower(strings.TrimSpace(optional(row, cols.ValueInTension2))); v != "" {
		valuesInTension = append(valuesInTension, v)
	}

	sentEmailReceived := !strings.Contains(strings.ToLower(optional(row, cols.SentEmailReceived)), "false")

	github, gitlab := handle.Normalize(optional(row, cols.GitHub))

	location := strings.TrimSpace(optional(row, cols.Location))
	phone, countryCode, _ := phonenorm.Normalize(optional(row, cols.Phone), location)

	resume := strings.TrimSpace(optional(row, cols.Resume))
	materials := strings.TrimSpace(optional(row, cols.Materials))

	resumeContents := as.fetchText(ctx, resume)
	materialsContents := as.fetchText(ctx, materials)

	return &applicant.Applicant{
		Name:        row[cols.Name],
		Role:        sheetName,
		SheetID:     sheetID,
		Status:      status,
		SubmittedAt: submittedAt.UTC(),
		Email:       kernel.Email(row[cols.Email]),

		Phone:       phone,
		CountryCode: kernel.CountryCode(countryCode),
		Location:    location,

		GitHub:    github,
		GitLab:    gitlab,
		LinkedIn:  strings.ToLower(strings.TrimSpace(optional(row, cols.LinkedIn))),
		Portfolio: strings.ToLower(strings.TrimSpace(optional(row, cols.Portfolio))),
		Website:   strings.ToLower(strings.TrimSpace(optional(row, cols.Website))),

		Resume:            resume,
		Materials:         materials,
		SentEmailReceived: sentEmailReceived,

		ValueReflected:  strings.ToLower(strings.TrimSpace(optional(row, cols.ValueReflected))),
		ValueViolated:   strings.ToLower(strings.TrimSpace(optional(row, cols.ValueViolated))),
		ValuesInTension: valuesInTension,

		ResumeContents:    resumeContents,
		MaterialsContents: materialsContents,

		WorkSamples:         docparse.ExtractFirst(materialsContents, docparse.WorkSamples),
		WritingSamples:      docparse.ExtractFirst(materialsContents, docparse.WritingSamples),
		AnalysisSamples:     docparse.ExtractFirst(materialsContents, docparse.AnalysisSamples),
		PresentationSamples: docparse.ExtractFirst(materialsContents, docparse.PresentationSamples),
		ExploratorySamples:  docparse.ExtractFirst(materialsContents, docparse.ExploratorySamples),

		QuestionTechnicallyChallenging: docparse.ExtractFirst(materialsContents, docparse.QuestionTechnicallyChallenging),
		QuestionProudOf:                docparse.ExtractFirst(materialsContents, docparse.QuestionProudOf),
		QuestionHappiest:               docparse.ExtractFirst(materialsContents, docparse.QuestionHappiest),
		QuestionUnhappiest:             docparse.ExtractFirst(materialsContents, docparse.QuestionUnhappiest),
		QuestionValueReflected:         docparse.ExtractFirst(materialsContents, docparse.QuestionValueReflected),
		QuestionValueViolated:          docparse.ExtractFirst(materialsContents, docparse.QuestionValueViolated),
		QuestionValuesInTension:        docparse.ExtractFirst(materialsContents, docparse.QuestionValuesInTension),
		QuestionWhyUs:                  docparse.ExtractFirst(materialsContents, docparse.QuestionWhyUs),
	}, nil
}

// fetchText retrieves a document's text, mapping every failure mode onto
// empty text. The extractors tolerate empty documents, so a failed fetch
// degrades the record instead of aborting the row.
func (as *Assembler) fetchText(ctx context.Context, ref string) string {
	if ref == "" {
		return ""
	}

	text, err := as.documents.Fetch(ctx, ref)
	if err != nil {
		logx.Warnf("document fetch failed for %q: %v", ref, err)
		return ""
	}

	return text
}

// optional reads a column defensively: index 0 is the "column not present"
// sentinel, and an index beyond the row's length means the trailing cells
// were empty.
func optional(row []string, idx int) string {
	if idx == 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
