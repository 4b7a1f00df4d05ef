package domain

import "strings"

// Filter selects the subset of meetings satisfying every set criterion.
// Unset criteria impose no constraint. Day and Format compare
// case-insensitively; Time and Type compare exactly against their
// enumerations. Output preserves input order; the input is never mutated.
//
// Meetings with a blank name are dropped even though the validator should
// have rejected them: the filter does not assume catalog validity.
func Filter(meetings []Meeting, c Criteria) []Meeting {
	out := make([]Meeting, 0, len(meetings))
	for _, m := range meetings {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		if !matches(m, c) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matches(m Meeting, c Criteria) bool {
	if c.Day != "" && !strings.EqualFold(m.Day, c.Day) {
		return false
	}
	if c.Time != "" && m.Time != MeetingTime(c.Time) {
		return false
	}
	if c.Type != "" && m.Type != MeetingType(c.Type) {
		return false
	}
	if c.Format != "" && !strings.EqualFold(m.Format, c.Format) {
		return false
	}
	return true
}
