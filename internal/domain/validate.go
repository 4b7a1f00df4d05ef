package domain

import (
	"errors"
	"strings"
)

// Row rejection errors. Both mean "drop the row", never "abort the load".
var (
	ErrEmptyRow  = errors.New("empty row")
	ErrEmptyName = errors.New("missing meeting name")
)

// joinIDColumns lists the accepted header names for the videoconference
// identifier, highest priority first. See the package documentation.
var joinIDColumns = []string{"Zoom ID", "Meeting ID", "Remote ID"}

// notesColumns lists the accepted header names for the notes field.
var notesColumns = []string{"Notes", "Comments"}

// ParseRow converts one raw CSV row (header name → cell) into a Meeting.
// It rejects empty rows and rows whose Name is blank after trimming, and
// applies the Time and Type defaults. Pure function of its input.
func ParseRow(row map[string]string) (Meeting, error) {
	if len(row) == 0 {
		return Meeting{}, ErrEmptyRow
	}

	name := strings.TrimSpace(row["Name"])
	if name == "" {
		return Meeting{}, ErrEmptyName
	}

	return Meeting{
		Name:         name,
		Day:          strings.TrimSpace(row["Day"]),
		Time:         ParseMeetingTime(row["Time"]),
		TimeDisplay:  strings.TrimSpace(row["Time Display"]),
		Type:         ParseMeetingType(row["Type"]),
		Format:       strings.TrimSpace(row["Format"]),
		Address:      strings.TrimSpace(row["Address"]),
		Contact:      strings.TrimSpace(row["Contact"]),
		Notes:        firstNonEmpty(row, notesColumns),
		RemoteJoinID: firstNonEmpty(row, joinIDColumns),
	}, nil
}

// firstNonEmpty returns the first non-blank value among the aliased columns.
func firstNonEmpty(row map[string]string, columns []string) string {
	for _, col := range columns {
		if v := strings.TrimSpace(row[col]); v != "" {
			return v
		}
	}
	return ""
}

// ParseMeetingTime parses a time-of-day bucket, defaulting to morning for
// unknown or missing values.
func ParseMeetingTime(s string) MeetingTime {
	switch normalizeToken(s) {
	case "afternoon":
		return TimeAfternoon
	case "evening":
		return TimeEvening
	default:
		return TimeMorning
	}
}

// ParseMeetingType parses an attendance type, defaulting to in-person for
// unknown or missing values.
func ParseMeetingType(s string) MeetingType {
	switch normalizeToken(s) {
	case "virtual", "online":
		return TypeVirtual
	case "hybrid":
		return TypeHybrid
	default:
		return TypeInPerson
	}
}

// normalizeToken lower-cases and strips spaces and hyphens, so "In Person",
// "in-Person", and "INPERSON" all compare equal.
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
