package applicant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/funnel/pkg/kernel"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"next steps exact", "Next steps", StatusNextSteps},
		{"next steps embedded", "moving to NEXT STEPS soon", StatusNextSteps},
		{"deferred", "deferred to Q3", StatusDeferred},
		{"declined with prefix", "Status: DECLINED - not a fit", StatusDeclined},
		{"hired", "Hired!", StatusHired},
		{"unknown lowercased", "  On Hold  ", "on hold"},
		{"next steps beats declined", "next steps, previously declined", StatusNextSteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.raw))
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{90 * time.Second, "a minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{90 * time.Minute, "an hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{30 * time.Hour, "a day ago"},
		{5 * 24 * time.Hour, "5 days ago"},
		{45 * 24 * time.Hour, "a month ago"},
		{100 * 24 * time.Hour, "3 months ago"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanize(tt.d))
	}
}

func testApplicant() *Applicant {
	return &Applicant{
		Name:        "Ada Lovelace",
		Role:        "Engineering",
		SheetID:     kernel.SheetID("sheet-123"),
		Status:      StatusNeedsTriage,
		SubmittedAt: time.Now().Add(-2 * time.Hour),
		Email:       kernel.Email("ada@example.com"),
		Phone:       "+44 20 7946 0958",
		CountryCode: kernel.CountryCode("gb"),
		Location:    "London, UK",
		GitHub:      "@adal",
		LinkedIn:    "https://linkedin.com/in/adal",
		Resume:      "https://drive.example.com/resume",
		Materials:   "https://drive.example.com/materials",

		ValueReflected:  "rigor",
		ValuesInTension: []string{"urgency", "rigor"},
	}
}

func TestAsChatMessage(t *testing.T) {
	a := testApplicant()

	msg := a.AsChatMessage()
	require.Len(t, msg.Blocks, 4)

	intro := msg.Blocks[0]
	assert.Equal(t, ChatBlockSection, intro.Type)
	require.NotNil(t, intro.Text)
	assert.Contains(t, intro.Text.Text, "Ada Lovelace")
	assert.Contains(t, intro.Text.Text, "mailto:ada@example.com")
	assert.Contains(t, intro.Text.Text, "London, UK")

	info := msg.Blocks[1]
	require.Len(t, info.Elements, 1)
	assert.Contains(t, info.Elements[0].Text, "resume")
	assert.Contains(t, info.Elements[0].Text, "tel:+44 20 7946 0958")
	assert.Contains(t, info.Elements[0].Text, "https://github.com/adal")
	assert.NotContains(t, info.Elements[0].Text, "gitlab")

	values := msg.Blocks[2]
	require.Len(t, values.Elements, 1)
	assert.Contains(t, values.Elements[0].Text, "values reflected: *rigor*")
	assert.Contains(t, values.Elements[0].Text, "in tension: *urgency* *& rigor*")

	status := msg.Blocks[3]
	require.Len(t, status.Elements, 1)
	assert.Contains(t, status.Elements[0].Text, "status: *Needs to be triaged*")
	assert.Contains(t, status.Elements[0].Text, "sheet-123")
}

func TestAsChatMessage_Pure(t *testing.T) {
	a := testApplicant()

	before := *a
	first := a.AsChatMessage()
	second := a.AsChatMessage()

	assert.Equal(t, first, second)
	assert.Equal(t, before.Status, a.Status)
	assert.Equal(t, before.Phone, a.Phone)
	assert.Equal(t, before.GitHub, a.GitHub)
}

func TestAsChatMessage_EmptyValues(t *testing.T) {
	a := testApplicant()
	a.ValueReflected = ""
	a.ValueViolated = ""
	a.ValuesInTension = nil

	msg := a.AsChatMessage()
	require.Len(t, msg.Blocks, 4)
	assert.Equal(t, "values not yet populated", msg.Blocks[2].Elements[0].Text)
}

func TestAsNotificationEmail(t *testing.T) {
	a := testApplicant()

	body := a.AsNotificationEmail()
	assert.Contains(t, body, "## Applicant Information for Engineering")
	assert.Contains(t, body, "Name: Ada Lovelace")
	assert.Contains(t, body, "Email: ada@example.com")
	assert.Contains(t, body, "Phone: +44 20 7946 0958")
	assert.Contains(t, body, "GitHub: @adal (https://github.com/adal)")
	assert.NotContains(t, body, "GitLab")
	assert.Contains(t, body, "Resume: https://drive.example.com/resume")
}
