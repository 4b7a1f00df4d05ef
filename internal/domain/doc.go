// Package domain models support-group meeting listings.
//
// # Data Source
//
// Meetings originate from a published CSV document with a header row, typically
// exported from a spreadsheet maintained by the group's coordinators. Header
// names are matched case-sensitively. Recognized columns:
//
//	Name          meeting title; rows with a blank name are dropped entirely
//	Day           free-text weekday label ("Monday"); compared case-insensitively
//	Time          time-of-day bucket: morning, afternoon, or evening
//	Time Display  human-readable time string ("7:00 - 8:30 PM"), display only
//	Type          in-person, virtual, or hybrid
//	Format        optional free-text label ("Regular", "Beginner")
//	Address       postal address; blank means the meeting cannot be mapped
//	Contact       display-only contact text
//	Notes         display-only free text; "Comments" is accepted as an alias
//
// The videoconference identifier column has appeared under several names across
// exports. Aliases are checked in a fixed priority order and the first non-empty
// value wins:
//
//	Zoom ID, Meeting ID, Remote ID
//
// # Field Conventions
//
// Time and Type are closed enumerations parsed tolerantly: casing and internal
// spacing are ignored ("In Person" → in-person). Unknown or missing values fall
// back to morning and in-person respectively.
//
// Join identifiers are free text that usually embeds a 9-11 digit Zoom meeting
// number, e.g. "ID: 862 0151 7244" or a full invite URL. A numeric passcode may
// follow a "passcode:" marker in the notes or the identifier itself. See
// [JoinLink].
//
// Addresses are geocoded exactly as written. For display, a trailing US state
// and ZIP suffix ("..., Cambridge, MA 02139" → "..., Cambridge") is stripped by
// [DisplayAddress]; the stripped form is never used for geocoding.
package domain
