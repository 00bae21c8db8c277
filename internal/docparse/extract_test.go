package docparse

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBetween(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		start string
		end   string
		want  string
	}{
		{
			name:  "empty document",
			doc:   "",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "",
		},
		{
			name:  "section absent",
			doc:   "A resume with no questionnaire at all.",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "",
		},
		{
			name:  "simple section",
			doc:   "Work sample(s): Did the thing.\n\nWriting samples: linked below",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "Did the thing.",
		},
		{
			name:  "section spans line breaks",
			doc:   "Work sample(s):\nBuilt a thing.\nShipped it.\n\nWriting samples:",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "Built a thing.\nShipped it.",
		},
		{
			name:  "adjacent boundaries yield empty",
			doc:   "Work sample(s):\n\nWriting samples: some essay",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "",
		},
		{
			name:  "underscore rule stripped",
			doc:   "Work sample(s): my repo\n________________\nWriting samples:",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "my repo",
		},
		{
			name:  "document title restatement stripped",
			doc:   "Work sample(s): Candidate Materials\nthe actual answer\nWriting samples:",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "the actual answer",
		},
		{
			name:  "empty end pattern captures to end of document",
			doc:   "Why do you want to work for us? Because of the mission.",
			start: `Why do you want to work for us\?`,
			end:   "",
			want:  "Because of the mission.",
		},
		{
			name:  "only boilerplate yields empty",
			doc:   "Work sample(s):\n________________\nWriting samples:",
			start: `Work sample\(s\)`,
			end:   "Writing samples",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBetween(tt.doc, tt.start, tt.end))
		})
	}
}

func TestExtract_GapWildcards(t *testing.T) {
	// Exported documents wrap lines mid-sentence; the gap wildcards have to
	// bridge those breaks.
	doc := "W\nhat work h\nave you found mos\nt technically challenging in your " +
		"caree\nr and wh\ny?\nDebugging a kernel deadlock.\n" +
		"What work have you done that you are particularly proud of and why?\nShipped v1."

	got := Extract(doc, Boundary(questionTechnicallyChallenging, questionWorkProudOf))
	assert.Equal(t, "Debugging a kernel deadlock.", got)
}

func TestExtractFirst_PriorityOrder(t *testing.T) {
	doc := "Work samples: older phrasing answer\n\nExploratory samples:"

	// The primary phrasing does not match this document; the fallback does.
	got := ExtractFirst(doc, WorkSamples)
	require.NotEmpty(t, got)
	assert.Equal(t, "older phrasing answer", got)

	// Fallback chaining equals applying the matching pair directly.
	direct := ExtractBetween(doc, `Work samples`, "Exploratory samples")
	assert.Equal(t, direct, got)
}

func TestExtractFirst_AllMiss(t *testing.T) {
	assert.Empty(t, ExtractFirst("nothing relevant here", WritingSamples))
	assert.Empty(t, ExtractFirst("", WritingSamples))
}

func TestExtract_LeadingColonStripped(t *testing.T) {
	doc := "Writing sample(s) : https://example.com/essay\nAnalysis samples:"
	got := ExtractFirst(doc, WritingSamples)
	assert.Equal(t, "https://example.com/essay", got)
}

func TestRuleTables_Compiled(t *testing.T) {
	tables := map[string][]*regexp.Regexp{
		"work":         WorkSamples,
		"writing":      WritingSamples,
		"analysis":     AnalysisSamples,
		"presentation": PresentationSamples,
		"exploratory":  ExploratorySamples,
		"challenging":  QuestionTechnicallyChallenging,
		"proud":        QuestionProudOf,
		"happiest":     QuestionHappiest,
		"unhappiest":   QuestionUnhappiest,
		"reflected":    QuestionValueReflected,
		"violated":     QuestionValueViolated,
		"tension":      QuestionValuesInTension,
		"why us":       QuestionWhyUs,
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			require.GreaterOrEqual(t, len(table), 2)
			for _, re := range table {
				require.NotNil(t, re)
			}
		})
	}
}
