package domain

// MeetingTime is the time-of-day bucket a meeting falls into.
type MeetingTime string

const (
	TimeMorning   MeetingTime = "morning"
	TimeAfternoon MeetingTime = "afternoon"
	TimeEvening   MeetingTime = "evening"
)

// MeetingType describes how a meeting is attended.
type MeetingType string

const (
	TypeInPerson MeetingType = "in-person"
	TypeVirtual  MeetingType = "virtual"
	TypeHybrid   MeetingType = "hybrid"
)

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Meeting is one validated catalog entry. Values are immutable once built;
// the whole catalog is replaced on reload.
type Meeting struct {
	Name         string      `json:"name"`
	Day          string      `json:"day,omitempty"`
	Time         MeetingTime `json:"time"`
	TimeDisplay  string      `json:"time_display,omitempty"`
	Type         MeetingType `json:"type"`
	Format       string      `json:"format,omitempty"`
	Address      string      `json:"address,omitempty"`
	Contact      string      `json:"contact,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	RemoteJoinID string      `json:"remote_join_id,omitempty"`

	// Coordinates is nil when the meeting has no address or resolution failed.
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Criteria holds the user-selected filter values. A zero value on any axis
// imposes no constraint.
type Criteria struct {
	Day    string
	Time   string
	Type   string
	Format string
}

// MarkerGroup is one map marker: every meeting sharing an exact coordinate pair.
type MarkerGroup struct {
	Coordinates Coordinates `json:"coordinates"`
	Meetings    []Meeting   `json:"meetings"`
}
