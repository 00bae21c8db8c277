// Package docparse carves named answer sections out of candidate materials
// documents. Sections are located by boundary expressions: the pattern where
// one question starts and the pattern where the next one starts. Documents
// come back from export with inconsistent line wrapping, so boundary patterns
// use (?s:.*) gap wildcards between the stable fragments of each phrasing.
package docparse

import (
	"regexp"
	"strings"
)

// Boilerplate substrings that show up verbatim inside captured sections and
// never belong to an answer.
var boilerplate = []string{
	"________________",
	"Candidate Materials: Technical Program Manager",
	"Candidate Materials",
	"Work sample(s)",
}

// Boundary compiles a start/end pattern pair into a single section
// expression. The capture group swallows everything between the two markers,
// line breaks included. An empty end pattern captures through the end of the
// document.
func Boundary(start, end string) *regexp.Regexp {
	return regexp.MustCompile(start + `(?s)(.*)` + end)
}

// Extract returns the cleaned section captured by re, or "" when the
// document is empty or the section is absent. Absence is not an error;
// most documents only contain a subset of the known sections.
func Extract(doc string, re *regexp.Regexp) string {
	if doc == "" {
		return ""
	}

	m := re.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}

	return clean(m[1])
}

// ExtractBetween is Extract with an ad hoc boundary pair. Prefer the
// precompiled rule tables in rules.go on hot paths.
func ExtractBetween(doc, start, end string) string {
	if doc == "" {
		return ""
	}
	return Extract(doc, Boundary(start, end))
}

// ExtractFirst tries each pattern in priority order and returns the first
// non-empty section. The order models historical phrasings of the same
// question: most specific and most recent first.
func ExtractFirst(doc string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if s := Extract(doc, re); s != "" {
			return s
		}
	}
	return ""
}

func clean(s string) string {
	for _, b := range boilerplate {
		s = strings.ReplaceAll(s, b, "")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ":")
	return strings.TrimSpace(s)
}
