package applicant

import (
	"fmt"
	"strings"
	"time"

	"github.com/talentops/funnel/pkg/kernel"
)

// Canonical triage statuses. Anything the status column contains beyond
// these stays as the trimmed lowercase value the reviewer typed.
const (
	StatusNeedsTriage = "Needs to be triaged"
	StatusNextSteps   = "Next steps"
	StatusDeferred    = "Deferred"
	StatusDeclined    = "Declined"
	StatusHired       = "Hired"
)

// Applicant is the canonical record assembled from one application sheet row
// plus the text of the documents the row references. It is immutable after
// assembly; only persistence metadata is set later.
type Applicant struct {
	ID          kernel.ApplicantID `db:"id" json:"id,omitempty"`
	Name        string             `db:"name" json:"name"`
	Role        string             `db:"role" json:"role"`
	SheetID     kernel.SheetID     `db:"sheet_id" json:"sheetId"`
	Status      string             `db:"status" json:"status"`
	SubmittedAt time.Time          `db:"submitted_at" json:"submittedTime"`
	Email       kernel.Email       `db:"email" json:"email"`

	Phone       string             `db:"phone" json:"phone,omitempty"`
	CountryCode kernel.CountryCode `db:"country_code" json:"countryCode,omitempty"`
	Location    string             `db:"location" json:"location,omitempty"`

	GitHub    string `db:"github" json:"github,omitempty"`
	GitLab    string `db:"gitlab" json:"gitlab,omitempty"`
	LinkedIn  string `db:"linkedin" json:"linkedin,omitempty"`
	Portfolio string `db:"portfolio" json:"portfolio,omitempty"`
	Website   string `db:"website" json:"website,omitempty"`

	Resume            string `db:"resume" json:"resume"`
	Materials         string `db:"materials" json:"materials"`
	SentEmailReceived bool   `db:"sent_email_received" json:"sentEmailReceived"`

	ValueReflected  string   `db:"value_reflected" json:"valueReflected,omitempty"`
	ValueViolated   string   `db:"value_violated" json:"valueViolated,omitempty"`
	ValuesInTension []string `db:"values_in_tension" json:"valuesInTension,omitempty"`

	ResumeContents    string `db:"resume_contents" json:"resumeContents,omitempty"`
	MaterialsContents string `db:"materials_contents" json:"materialsContents,omitempty"`

	WorkSamples         string `db:"work_samples" json:"workSamples,omitempty"`
	WritingSamples      string `db:"writing_samples" json:"writingSamples,omitempty"`
	AnalysisSamples     string `db:"analysis_samples" json:"analysisSamples,omitempty"`
	PresentationSamples string `db:"presentation_samples" json:"presentationSamples,omitempty"`
	ExploratorySamples  string `db:"exploratory_samples" json:"exploratorySamples,omitempty"`

	QuestionTechnicallyChallenging string `db:"question_technically_challenging" json:"questionTechnicallyChallenging,omitempty"`
	QuestionProudOf                string `db:"question_proud_of" json:"questionProudOf,omitempty"`
	QuestionHappiest               string `db:"question_happiest" json:"questionHappiest,omitempty"`
	QuestionUnhappiest             string `db:"question_unhappiest" json:"questionUnhappiest,omitempty"`
	QuestionValueReflected         string `db:"question_value_reflected" json:"questionValueReflected,omitempty"`
	QuestionValueViolated          string `db:"question_value_violated" json:"questionValueViolated,omitempty"`
	QuestionValuesInTension        string `db:"question_values_in_tension" json:"questionValuesInTension,omitempty"`
	QuestionWhyUs                  string `db:"question_why_us" json:"questionWhyUs,omitempty"`

	// MaterialsEmbedding powers similarity search; it is not part of the
	// assembled record and is filled in by the sync service.
	MaterialsEmbedding []float32 `db:"-" json:"-"`
}

// NormalizeStatus maps a free-text status column value onto a canonical
// triage status by substring containment, first match wins. An unknown value
// stays as the trimmed lowercase input; an empty one means the row has not
// been triaged yet.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.Contains(s, "next steps"):
		return StatusNextSteps
	case strings.Contains(s, "deferred"):
		return StatusDeferred
	case strings.Contains(s, "declined"):
		return StatusDeclined
	case strings.Contains(s, "hired"):
		return StatusHired
	}

	return s
}

// HumanDuration renders how long ago the application was submitted.
func (a *Applicant) HumanDuration() string {
	return humanize(time.Since(a.SubmittedAt))
}

func humanize(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < 2*time.Minute:
		return "a minute ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 2*time.Hour:
		return "an hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "a day ago"
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	case d < 60*24*time.Hour:
		return "a month ago"
	default:
		return fmt.Sprintf("%d months ago", int(d.Hours()/(24*30)))
	}
}

// AsChatMessage renders the applicant as a block-formatted chat
// notification. It is a pure function of the record.
func (a *Applicant) AsChatMessage() ChatMessage {
	statusMsg := fmt.Sprintf("<https://docs.google.com/spreadsheets/d/%s|%s> Applicant | applied %s",
		a.SheetID, a.Role, a.HumanDuration())
	if a.Status != "" {
		statusMsg += fmt.Sprintf(" | status: *%s*", a.Status)
	}

	var valuesMsg string
	if a.ValueReflected != "" {
		valuesMsg += fmt.Sprintf("values reflected: *%s*", a.ValueReflected)
	}
	if a.ValueViolated != "" {
		valuesMsg += fmt.Sprintf(" | violated: *%s*", a.ValueViolated)
	}
	for i, tension := range a.ValuesInTension {
		if i == 0 {
			valuesMsg += fmt.Sprintf(" | in tension: *%s*", tension)
		} else {
			valuesMsg += fmt.Sprintf(" *& %s*", tension)
		}
	}
	if valuesMsg == "" {
		valuesMsg = "values not yet populated"
	}

	introMsg := fmt.Sprintf("*%s*  <mailto:%s|%s>", a.Name, a.Email, a.Email)
	if a.Location != "" {
		introMsg += "  " + a.Location
	}

	infoMsg := fmt.Sprintf("<%s|resume> | <%s|materials>", a.Resume, a.Materials)
	if a.Phone != "" {
		infoMsg += fmt.Sprintf(" | <tel:%s|%s>", a.Phone, a.Phone)
	}
	if a.GitHub != "" {
		infoMsg += fmt.Sprintf(" | <https://github.com/%s|github:%s>",
			strings.TrimPrefix(a.GitHub, "@"), a.GitHub)
	}
	if a.GitLab != "" {
		infoMsg += fmt.Sprintf(" | <https://gitlab.com/%s|gitlab:%s>",
			strings.TrimPrefix(a.GitLab, "@"), a.GitLab)
	}
	if a.LinkedIn != "" {
		infoMsg += fmt.Sprintf(" | <%s|linkedin>", a.LinkedIn)
	}
	if a.Portfolio != "" {
		infoMsg += fmt.Sprintf(" | <%s|portfolio>", a.Portfolio)
	}
	if a.Website != "" {
		infoMsg += fmt.Sprintf(" | <%s|website>", a.Website)
	}

	return ChatMessage{
		Blocks: []ChatBlock{
			{Type: ChatBlockSection, Text: &ChatText{Type: ChatTextMarkdown, Text: introMsg}},
			{Type: ChatBlockContext, Elements: []ChatText{{Type: ChatTextMarkdown, Text: infoMsg}}},
			{Type: ChatBlockContext, Elements: []ChatText{{Type: ChatTextMarkdown, Text: valuesMsg}}},
			{Type: ChatBlockContext, Elements: []ChatText{{Type: ChatTextMarkdown, Text: statusMsg}}},
		},
	}
}

// AsNotificationEmail renders the plain-text body of the company-wide
// new-application email.
func (a *Applicant) AsNotificationEmail() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Applicant Information for %s\n\n", a.Role)
	fmt.Fprintf(&b, "Submitted %s\n", a.HumanDuration())
	fmt.Fprintf(&b, "Name: %s\n", a.Name)
	fmt.Fprintf(&b, "Email: %s", a.Email)

	if a.Location != "" {
		fmt.Fprintf(&b, "\nLocation: %s", a.Location)
	}
	if a.Phone != "" {
		fmt.Fprintf(&b, "\nPhone: %s", a.Phone)
	}
	if a.GitHub != "" {
		fmt.Fprintf(&b, "\nGitHub: %s (https://github.com/%s)", a.GitHub, strings.TrimPrefix(a.GitHub, "@"))
	}
	if a.GitLab != "" {
		fmt.Fprintf(&b, "\nGitLab: %s (https://gitlab.com/%s)", a.GitLab, strings.TrimPrefix(a.GitLab, "@"))
	}
	if a.LinkedIn != "" {
		fmt.Fprintf(&b, "\nLinkedIn: %s", a.LinkedIn)
	}
	if a.Portfolio != "" {
		fmt.Fprintf(&b, "\nPortfolio: %s", a.Portfolio)
	}
	if a.Website != "" {
		fmt.Fprintf(&b, "\nWebsite: %s", a.Website)
	}

	fmt.Fprintf(&b, "\nResume: %s\nCandidate Materials: %s\n", a.Resume, a.Materials)

	return b.String()
}
