// Package phonenorm normalizes free-text phone numbers from application
// rows. The dialing country is inferred from the applicant's free-text
// location, corroborated for some countries by the number's dialing prefix,
// and the number is re-rendered in international format when it parses.
package phonenorm

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/talentops/funnel/pkg/logx"
)

// countryRule associates location keywords with a dialing country. When
// prefix is non-empty the stripped digits must also start with it. The rules
// are an ordered priority list: the first match wins and the rest are never
// evaluated. Some countries corroborate on prefix and some do not; that
// asymmetry comes from the historical data and is kept as is.
type countryRule struct {
	code     string
	keywords []string
	prefix   string
}

var countryRules = []countryRule{
	{code: "gb", keywords: []string{"uk", "london", "ipswich", "united kingdom", "england"}, prefix: "44"},
	{code: "cz", keywords: []string{"czech republic", "prague"}, prefix: "420"},
	{code: "in", keywords: []string{"mumbai", "india", "bangalore"}, prefix: "91"},
	{code: "br", keywords: []string{"brazil"}},
	{code: "be", keywords: []string{"belgium"}},
	{code: "ro", keywords: []string{"romania"}, prefix: "40"},
	{code: "ng", keywords: []string{"nigeria"}},
	{code: "at", keywords: []string{"austria"}},
	{code: "au", keywords: []string{"australia"}, prefix: "61"},
	{code: "lk", keywords: []string{"sri lanka"}, prefix: "94"},
	{code: "si", keywords: []string{"slovenia"}, prefix: "386"},
	{code: "fr", keywords: []string{"france"}, prefix: "33"},
	{code: "nl", keywords: []string{"netherlands"}, prefix: "31"},
	{code: "tw", keywords: []string{"taiwan"}},
	{code: "nz", keywords: []string{"new zealand"}},
	{code: "it", keywords: []string{"maragno", "italy"}},
	{code: "ke", keywords: []string{"nairobi", "kenya"}},
	{code: "ae", keywords: []string{"dubai"}},
	{code: "pl", keywords: []string{"poland"}},
	{code: "pt", keywords: []string{"portugal"}},
	{code: "de", keywords: []string{"berlin", "germany"}},
	{code: "bj", keywords: []string{"benin"}, prefix: "229"},
	{code: "il", keywords: []string{"israel"}},
	{code: "es", keywords: []string{"spain"}},
}

// defaultCountry is used when no rule matches the location text.
const defaultCountry = "us"

// stripFormatting removes the characters applicants use to format numbers,
// leaving the bare digit string.
func stripFormatting(raw string) string {
	r := strings.NewReplacer(" ", "", "-", "", "+", "", "(", "", ")", "")
	return r.Replace(strings.TrimSpace(raw))
}

// InferCountry returns the two-letter dialing country for a location string
// and a stripped digit string. First matching rule wins; no match falls back
// to the default country.
func InferCountry(location, digits string) string {
	loc := strings.ToLower(location)

	for _, rule := range countryRules {
		if !containsAny(loc, rule.keywords) {
			continue
		}
		if rule.prefix != "" && !strings.HasPrefix(digits, rule.prefix) {
			continue
		}
		return rule.code
	}

	return defaultCountry
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Normalize strips formatting from rawPhone, infers the dialing country from
// location, and re-renders the number in international format. The country
// code is always returned, even for an empty or unparseable number. An
// invalid-but-parseable number is kept and reported via the valid flag; it
// is a log-worthy condition, not an error.
func Normalize(rawPhone, location string) (formatted, countryCode string, valid bool) {
	digits := stripFormatting(rawPhone)
	countryCode = InferCountry(location, digits)

	if digits == "" {
		return "", countryCode, false
	}

	num, err := phonenumbers.Parse(digits, strings.ToUpper(countryCode))
	if err != nil {
		// Keep the stripped digits untouched when the library cannot make
		// sense of them at all.
		return digits, countryCode, false
	}

	valid = phonenumbers.IsValidNumber(num)
	if !valid {
		logx.Warnf("phone number is invalid for %s: %s", countryCode, digits)
	}

	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL), countryCode, valid
}
