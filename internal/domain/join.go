package domain

import (
	"regexp"
	"strings"
)

var (
	// joinIDRe matches a Zoom-style numeric meeting id. Zoom meeting numbers
	// are 9-11 digits; the identifier field often embeds them in free text or
	// a full invite URL, so digit groups separated by spaces are joined first.
	joinIDRe = regexp.MustCompile(`\d{9,11}`)

	// passcodeRe matches a numeric passcode after a "passcode:" marker,
	// e.g. "Passcode: 1234" or "passcode 1234".
	passcodeRe = regexp.MustCompile(`(?i)passcode:?\s*(\d+)`)

	digitSepRe = regexp.MustCompile(`(\d)[\s-](\d)`)
)

// JoinLink derives a videoconference join URL for a meeting. The numeric id is
// taken from the remote-join identifier, falling back to the notes; the
// optional passcode is searched in the concatenation of notes and identifier.
// Returns ("", false) when no 9-11 digit id can be found, in which case
// callers fall back to displaying the raw identifier text.
func JoinLink(m Meeting) (string, bool) {
	id := extractJoinID(m.RemoteJoinID)
	if id == "" {
		id = extractJoinID(m.Notes)
	}
	if id == "" {
		return "", false
	}

	link := "https://zoom.us/j/" + id
	if pc := extractPasscode(m.Notes + " " + m.RemoteJoinID); pc != "" {
		link += "?pwd=" + pc
	}
	return link, true
}

// extractJoinID pulls the first 9-11 digit run out of free text, tolerating
// ids written with spaced or hyphenated digit groups ("862 0151 7244").
func extractJoinID(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	for {
		joined := digitSepRe.ReplaceAllString(s, "$1$2")
		if joined == s {
			break
		}
		s = joined
	}
	return joinIDRe.FindString(s)
}

func extractPasscode(s string) string {
	match := passcodeRe.FindStringSubmatch(s)
	if len(match) != 2 {
		return ""
	}
	return match[1]
}
