// Package handle canonicalizes GitHub and GitLab identities from free-form
// input. Applicants enter anything from a bare username to a full profile
// URL, and some put a GitLab URL in the GitHub form field.
package handle

import "strings"

var githubPrefixes = []string{
	"https://github.com/",
	"http://github.com/",
	"https://www.github.com/",
}

const gitlabHost = "https://gitlab.com"

// Normalize returns the canonical @handle for the platform the raw value
// refers to. Exactly one of the results is non-empty, or both are empty when
// the input is blank.
func Normalize(raw string) (github, gitlab string) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return "", ""
	}

	gh := v
	for _, p := range githubPrefixes {
		gh = strings.TrimPrefix(gh, p)
	}
	gh = strings.TrimPrefix(gh, "@")
	gh = strings.TrimSuffix(gh, "/")
	github = "@" + gh

	// A GitLab URL entered in the GitHub field wins over the GitHub guess.
	if strings.Contains(github, gitlabHost) {
		gl := strings.TrimPrefix(v, gitlabHost+"/")
		gl = strings.TrimPrefix(gl, "@")
		gl = strings.TrimSuffix(gl, "/")
		return "", "@" + gl
	}

	return github, ""
}
