package domain

import (
	"regexp"
	"strings"
)

// stateNames holds US state names and their two-letter postal codes, used only
// to recognize a trailing state token when cleaning an address for display.
var stateNames = []string{
	"Alabama", "AL", "Alaska", "AK", "Arizona", "AZ", "Arkansas", "AR",
	"California", "CA", "Colorado", "CO", "Connecticut", "CT", "Delaware", "DE",
	"Florida", "FL", "Georgia", "GA", "Hawaii", "HI", "Idaho", "ID",
	"Illinois", "IL", "Indiana", "IN", "Iowa", "IA", "Kansas", "KS",
	"Kentucky", "KY", "Louisiana", "LA", "Maine", "ME", "Maryland", "MD",
	"Massachusetts", "MA", "Michigan", "MI", "Minnesota", "MN",
	"Mississippi", "MS", "Missouri", "MO", "Montana", "MT", "Nebraska", "NE",
	"Nevada", "NV", "New Hampshire", "NH", "New Jersey", "NJ",
	"New Mexico", "NM", "New York", "NY", "North Carolina", "NC",
	"North Dakota", "ND", "Ohio", "OH", "Oklahoma", "OK", "Oregon", "OR",
	"Pennsylvania", "PA", "Rhode Island", "RI", "South Carolina", "SC",
	"South Dakota", "SD", "Tennessee", "TN", "Texas", "TX", "Utah", "UT",
	"Vermont", "VT", "Virginia", "VA", "Washington", "WA",
	"West Virginia", "WV", "Wisconsin", "WI", "Wyoming", "WY",
	"District of Columbia", "DC",
}

// stateSuffixRe matches a final comma-separated state token, optionally
// followed by a 5-digit or ZIP+4 code: ", MA 02139", ", Massachusetts",
// ", ma 02139-1705". Built once at init from stateNames.
var stateSuffixRe = regexp.MustCompile(
	`(?i),\s*(?:` + strings.Join(quoteAll(stateNames), "|") + `)\s*(?:\d{5}(?:-\d{4})?)?\s*$`,
)

func quoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return quoted
}

// DisplayAddress strips a trailing state-and-ZIP suffix from a postal address
// for presentation. Geocoding always uses the original address, never this.
func DisplayAddress(address string) string {
	address = strings.TrimSpace(address)
	return strings.TrimSpace(stateSuffixRe.ReplaceAllString(address, ""))
}
