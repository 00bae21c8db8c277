package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantGithub string
		wantGitlab string
	}{
		{"empty input", "", "", ""},
		{"whitespace only", "   ", "", ""},
		{"bare handle", "octocat", "@octocat", ""},
		{"at-prefixed handle", "@Octocat", "@octocat", ""},
		{"https url", "https://github.com/octocat", "@octocat", ""},
		{"http url", "http://github.com/octocat/", "@octocat", ""},
		{"www url", "https://www.github.com/Octocat/", "@octocat", ""},
		{"gitlab url in github field", "https://gitlab.com/octocat/", "", "@octocat"},
		{"gitlab url with at", "https://gitlab.com/@octocat", "", "@octocat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			github, gitlab := Normalize(tt.raw)
			assert.Equal(t, tt.wantGithub, github)
			assert.Equal(t, tt.wantGitlab, gitlab)
		})
	}
}

func TestNormalize_MutuallyExclusive(t *testing.T) {
	inputs := []string{
		"", "octocat", "@x", "https://github.com/a",
		"https://gitlab.com/b/", "https://www.github.com/c",
	}

	for _, raw := range inputs {
		github, gitlab := Normalize(raw)
		assert.False(t, github != "" && gitlab != "", "both handles set for %q", raw)
	}
}
