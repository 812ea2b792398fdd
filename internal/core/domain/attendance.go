package domain

// AttendanceStatus represents a member's attendance state for one KST day.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusLate    AttendanceStatus = "LATE"
	// StatusAbsent is never persisted: absence is the lack of a record.
	StatusAbsent AttendanceStatus = "ABSENT"
)

// Point values fixed at write time; historical rows are never repriced.
const (
	PointsPresent = 1000
	PointsLate    = 500
)

// Persistable reports whether the status may be written to the ledger.
func (s AttendanceStatus) Persistable() bool {
	return s == StatusPresent || s == StatusLate
}

// PointsFor maps a status to its point value. ABSENT (and anything else)
// scores zero.
func PointsFor(s AttendanceStatus) int {
	switch s {
	case StatusPresent:
		return PointsPresent
	case StatusLate:
		return PointsLate
	default:
		return 0
	}
}

// PresenceStatuses is the status filter for "counted as attended" queries.
var PresenceStatuses = []string{string(StatusPresent), string(StatusLate)}
