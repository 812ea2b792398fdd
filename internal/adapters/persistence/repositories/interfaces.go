package repositories

import (
	"context"
	"time"

	"moimcheck/internal/adapters/persistence/models"
)

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id string) (*models.Member, error)
	ListActive(ctx context.Context) ([]*models.Member, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Deactivate(ctx context.Context, id string) error
}

// AttendanceRepository defines the attendance ledger interface.
//
// The ledger itself is day-agnostic: range filters take the UTC instant of a
// KST day start, and a nil `from` means "all time". The "current day only"
// policy lives in the service layer, not here.
type AttendanceRepository interface {
	// Upsert writes the record for (member, day); an existing record's
	// status and points are overwritten. Returns the stored row.
	Upsert(ctx context.Context, rec *models.Attendance) (*models.Attendance, error)
	// DeleteForDay removes the record for (member, day). Deleting a
	// nonexistent record is a no-op, not an error.
	DeleteForDay(ctx context.Context, memberID string, date time.Time) error

	CountInRange(ctx context.Context, memberID string, from time.Time, statuses []string) (int64, error)
	SumPoints(ctx context.Context, memberID string, from *time.Time, statuses []string) (int64, error)
	// DistinctDays counts distinct day keys across ALL members, the
	// denominator for attendance-rate metrics.
	DistinctDays(ctx context.Context, from *time.Time) (int64, error)
	// StatusOnDay maps memberID to status for every member with a record on
	// exactly that day; absence from the map means ABSENT.
	StatusOnDay(ctx context.Context, date time.Time) (map[string]string, error)
	CountOnDay(ctx context.Context, date time.Time, statuses []string) (int64, error)
	GroupCountByMember(ctx context.Context, from time.Time, statuses []string) (map[string]int64, error)
	GroupSumByMember(ctx context.Context, statuses []string) (map[string]int64, error)
	GroupCountByDay(ctx context.Context, from *time.Time, statuses []string) (map[time.Time]int64, error)
}

// AdminRepository defines admin credential repository interface
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

// AdminSessionRepository defines admin session repository interface
type AdminSessionRepository interface {
	// Upsert creates the session row, or re-arms an existing row with the
	// same token hash (re-login with an identical token).
	Upsert(ctx context.Context, session *models.AdminSession) error
	// GetByTokenHash returns the session with its owning admin loaded.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.AdminSession, error)
	UpdateExpiry(ctx context.Context, tokenHash string, expiresAt time.Time) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}
