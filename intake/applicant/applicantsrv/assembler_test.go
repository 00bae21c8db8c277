package applicantsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/pkg/errx"
	"github.com/talentops/funnel/pkg/kernel"
)

// fakeDocuments serves canned document text keyed by reference.
type fakeDocuments struct {
	docs map[string]string
	err  error
}

func (f *fakeDocuments) Fetch(_ context.Context, ref string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.docs[ref], nil
}

const sampleMaterials = `Candidate Materials

Work sample(s): Did the thing.

Writing samples: https://blog.example.com/essay

Analysis samples: Took apart a failing storage controller.

Presentation samples: https://talks.example.com/deck

Questionnaire

What work have you found most technically challenging in your career and why?
Debugging a distributed deadlock.

What work have you done that you are particularly proud of and why?
Shipped the first release.

When have you been happiest in your professional career and why?
Small teams, big problems.

When have you been unhappiest in your professional career and why?
Endless rewrites.

For one of our values, describe an example of how it was reflected in a particular body of your work.
Rigor, in the test suite.

For one of our values, describe an example of how it was violated in your organization or work.
Candor, in a postmortem.

For a pair of our values, describe a time in which the two values came into tension for you or your work, and how you resolved it.
Urgency versus rigor.

Why do you want to work for us?
Because of the mission.`

// testColumns mirrors the layout of the engineering applications sheet.
var testColumns = applicant.ColumnMap{
	Timestamp:         0,
	Name:              1,
	Email:             2,
	Location:          3,
	Phone:             4,
	Resume:            5,
	Materials:         6,
	Status:            7,
	GitHub:            8,
	LinkedIn:          9,
	Portfolio:         10,
	Website:           11,
	SentEmailReceived: 12,
	ValueReflected:    13,
	ValueViolated:     14,
	ValueInTension1:   15,
	ValueInTension2:   16,
}

func testRow() []string {
	return []string{
		"4/28/2025 13:45:12",
		"Ada Lovelace",
		"ada@example.com",
		"London, UK",
		"+44 20 7946 0958",
		"resume.pdf",
		"materials.pdf",
		"",
		"https://github.com/adal",
		"https://linkedin.com/in/adal",
		"",
		"https://ada.example.com",
		"TRUE",
		"rigor",
		"",
		"urgency",
		"rigor",
	}
}

func newTestAssembler() *Assembler {
	return NewAssembler(&fakeDocuments{docs: map[string]string{
		"resume.pdf":    "Ada Lovelace\nAnalyst Programmer",
		"materials.pdf": sampleMaterials,
	}})
}

func TestBuild_FullRow(t *testing.T) {
	a := newTestAssembler()

	rec, err := a.Build(context.Background(), testRow(), testColumns, "Engineering", kernel.SheetID("sheet-123"))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", rec.Name)
	assert.Equal(t, kernel.Email("ada@example.com"), rec.Email)
	assert.Equal(t, "Engineering", rec.Role)
	assert.Equal(t, kernel.SheetID("sheet-123"), rec.SheetID)

	// 13:45:12 at -08:00 is 21:45:12 UTC.
	assert.Equal(t, time.Date(2025, 4, 28, 21, 45, 12, 0, time.UTC), rec.SubmittedAt)

	assert.Equal(t, kernel.CountryCode("gb"), rec.CountryCode)
	assert.Equal(t, "+44 20 7946 0958", rec.Phone)
	assert.Equal(t, "London, UK", rec.Location)

	assert.Equal(t, "@adal", rec.GitHub)
	assert.Empty(t, rec.GitLab)
	assert.Equal(t, "https://linkedin.com/in/adal", rec.LinkedIn)
	assert.Empty(t, rec.Portfolio)
	assert.Equal(t, "https://ada.example.com", rec.Website)

	assert.Equal(t, applicant.StatusNeedsTriage, rec.Status)
	assert.True(t, rec.SentEmailReceived)
	assert.Equal(t, "rigor", rec.ValueReflected)
	assert.Empty(t, rec.ValueViolated)
	assert.Equal(t, []string{"urgency", "rigor"}, rec.ValuesInTension)

	assert.Equal(t, "Ada Lovelace\nAnalyst Programmer", rec.ResumeContents)
	assert.Equal(t, sampleMaterials, rec.MaterialsContents)
}

func TestBuild_ExtractedSections(t *testing.T) {
	a := newTestAssembler()

	rec, err := a.Build(context.Background(), testRow(), testColumns, "Engineering", kernel.SheetID("sheet-123"))
	require.NoError(t, err)

	assert.Equal(t, "Did the thing.", rec.WorkSamples)
	assert.Equal(t, "https://blog.example.com/essay", rec.WritingSamples)
	assert.Equal(t, "Took apart a failing storage controller.", rec.AnalysisSamples)
	assert.Equal(t, "https://talks.example.com/deck", rec.PresentationSamples)
	assert.Empty(t, rec.ExploratorySamples)

	assert.Equal(t, "Debugging a distributed deadlock.", rec.QuestionTechnicallyChallenging)
	assert.Equal(t, "Shipped the first release.", rec.QuestionProudOf)
	assert.Equal(t, "Small teams, big problems.", rec.QuestionHappiest)
	assert.Equal(t, "Endless rewrites.", rec.QuestionUnhappiest)
	assert.Equal(t, "Rigor, in the test suite.", rec.QuestionValueReflected)
	assert.Equal(t, "Candor, in a postmortem.", rec.QuestionValueViolated)
	assert.Equal(t, "Urgency versus rigor.", rec.QuestionValuesInTension)
	assert.Equal(t, "Because of the mission.", rec.QuestionWhyUs)
}

func TestBuild_Idempotent(t *testing.T) {
	a := newTestAssembler()

	first, err := a.Build(context.Background(), testRow(), testColumns, "Engineering", kernel.SheetID("sheet-123"))
	require.NoError(t, err)
	second, err := a.Build(context.Background(), testRow(), testColumns, "Engineering", kernel.SheetID("sheet-123"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_StatusNormalization(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{"empty status", "", applicant.StatusNeedsTriage},
		{"declined with noise", "Status: DECLINED - not a fit", applicant.StatusDeclined},
		{"next steps", "moving to next steps!", applicant.StatusNextSteps},
		{"deferred", "Deferred until spring", applicant.StatusDeferred},
		{"hired", "HIRED", applicant.StatusHired},
		{"unknown stays lowercased", "  On Hold  ", "on hold"},
	}

	a := newTestAssembler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := testRow()
			row[testColumns.Status] = tt.status

			rec, err := a.Build(context.Background(), row, testColumns, "Engineering", kernel.SheetID("s"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Status)
		})
	}
}

func TestBuild_GitlabURLInGithubColumn(t *testing.T) {
	a := newTestAssembler()

	row := testRow()
	row[testColumns.GitHub] = "https://gitlab.com/octocat/"

	rec, err := a.Build(context.Background(), row, testColumns, "Engineering", kernel.SheetID("s"))
	require.NoError(t, err)
	assert.Empty(t, rec.GitHub)
	assert.Equal(t, "@octocat", rec.GitLab)
}

func TestBuild_ShortRowStillAssembles(t *testing.T) {
	// A row that stops right after the mandatory columns: every optional
	// field falls back to its empty default, and the country code still
	// defaults without any phone or location signal.
	a := newTestAssembler()

	row := []string{"4/28/2025 13:45:12", "Grace Hopper", "grace@example.com"}
	rec, err := a.Build(context.Background(), row, testColumns, "Engineering", kernel.SheetID("s"))
	require.NoError(t, err)

	assert.Equal(t, applicant.StatusNeedsTriage, rec.Status)
	assert.Empty(t, rec.Phone)
	assert.Equal(t, kernel.CountryCode("us"), rec.CountryCode)
	assert.Empty(t, rec.GitHub)
	assert.Empty(t, rec.GitLab)
	assert.True(t, rec.SentEmailReceived)
	assert.Empty(t, rec.MaterialsContents)
	assert.Empty(t, rec.WorkSamples)
}

func TestBuild_RowMissingIdentityColumns(t *testing.T) {
	a := newTestAssembler()

	_, err := a.Build(context.Background(), []string{"4/28/2025 13:45:12"}, testColumns, "Engineering", kernel.SheetID("s"))
	require.Error(t, err)

	var e *errx.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, applicant.CodeMalformedRow, e.Code)
}

func TestBuild_BadTimestamp(t *testing.T) {
	a := newTestAssembler()

	row := testRow()
	row[testColumns.Timestamp] = "yesterday-ish"

	_, err := a.Build(context.Background(), row, testColumns, "Engineering", kernel.SheetID("s"))
	require.Error(t, err)

	var e *errx.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, applicant.CodeBadTimestamp, e.Code)
}

func TestBuild_FailedFetchYieldsEmptyText(t *testing.T) {
	a := NewAssembler(&fakeDocuments{err: errors.New("document store down")})

	rec, err := a.Build(context.Background(), testRow(), testColumns, "Engineering", kernel.SheetID("s"))
	require.NoError(t, err)

	assert.Empty(t, rec.ResumeContents)
	assert.Empty(t, rec.MaterialsContents)
	assert.Empty(t, rec.WorkSamples)
	assert.Empty(t, rec.QuestionWhyUs)
}

func TestBuild_SentEmailReceivedFalse(t *testing.T) {
	a := newTestAssembler()

	row := testRow()
	row[testColumns.SentEmailReceived] = "FALSE"

	rec, err := a.Build(context.Background(), row, testColumns, "Engineering", kernel.SheetID("s"))
	require.NoError(t, err)
	assert.False(t, rec.SentEmailReceived)
}
