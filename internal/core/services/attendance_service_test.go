package services

import (
	"context"
	"testing"
	"time"

	"moimcheck/internal/adapters/persistence/models"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/pkg/kst"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-10 is a Sunday, 2024-03-11 a Monday. Noon KST keeps the instant
// well clear of the day boundary.
var (
	sundayNoonKST = time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)
	mondayNoonKST = time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC)
)

func newAttendanceFixture(t *testing.T, now time.Time) (*AttendanceService, *fakeAttendanceRepo, *models.Member) {
	t.Helper()

	memberRepo := &fakeMemberRepo{}
	member := &models.Member{
		Name:      "김철수",
		Phone:     "010-1234-5678",
		BirthDate: time.Date(1995, 5, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	require.NoError(t, memberRepo.Create(context.Background(), member))

	attendanceRepo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(attendanceRepo, memberRepo)
	svc.now = func() time.Time { return now }
	return svc, attendanceRepo, member
}

func TestCheckInRecordsToday(t *testing.T) {
	svc, repo, member := newAttendanceFixture(t, sundayNoonKST)

	rec, dayKey, err := svc.CheckIn(context.Background(), member.ID, domain.StatusPresent, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", dayKey)
	assert.Equal(t, "PRESENT", rec.Status)
	assert.Equal(t, domain.PointsPresent, rec.Points)

	wantDate, err := kst.DayStart(dayKey)
	require.NoError(t, err)
	assert.True(t, rec.Date.Equal(wantDate))
	assert.Len(t, repo.records, 1)
}

func TestCheckInOverwritesSameDay(t *testing.T) {
	svc, repo, member := newAttendanceFixture(t, sundayNoonKST)
	ctx := context.Background()

	first, _, err := svc.CheckIn(ctx, member.ID, domain.StatusPresent, false)
	require.NoError(t, err)

	second, _, err := svc.CheckIn(ctx, member.ID, domain.StatusLate, false)
	require.NoError(t, err)

	// Still one record per (member, day); the later status wins
	assert.Len(t, repo.records, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "LATE", second.Status)
	assert.Equal(t, domain.PointsLate, second.Points)
}

func TestCheckInRejectsNonPersistableStatus(t *testing.T) {
	svc, _, member := newAttendanceFixture(t, sundayNoonKST)
	ctx := context.Background()

	_, _, err := svc.CheckIn(ctx, member.ID, domain.StatusAbsent, false)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, _, err = svc.CheckIn(ctx, member.ID, domain.AttendanceStatus("LURKING"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCheckInWeekdayRequiresAdmin(t *testing.T) {
	svc, _, member := newAttendanceFixture(t, mondayNoonKST)
	ctx := context.Background()

	_, _, err := svc.CheckIn(ctx, member.ID, domain.StatusPresent, false)
	assert.ErrorIs(t, err, domain.ErrAdminRequired)

	rec, dayKey, err := svc.CheckIn(ctx, member.ID, domain.StatusPresent, true)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", dayKey)
	assert.Equal(t, domain.PointsPresent, rec.Points)
}

func TestCheckInUnknownOrInactiveMember(t *testing.T) {
	svc, _, member := newAttendanceFixture(t, sundayNoonKST)
	ctx := context.Background()

	_, _, err := svc.CheckIn(ctx, "missing-id", domain.StatusPresent, false)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	member.IsActive = false
	_, _, err = svc.CheckIn(ctx, member.ID, domain.StatusPresent, false)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestMarkAbsentDeletesTodayOnly(t *testing.T) {
	svc, repo, member := newAttendanceFixture(t, sundayNoonKST)
	ctx := context.Background()

	// A record from a past day must survive today's absence
	pastDate, err := kst.DayStart("2024-03-03")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, &models.Attendance{
		MemberID: member.ID,
		Date:     pastDate,
		Status:   "PRESENT",
		Points:   domain.PointsPresent,
	})
	require.NoError(t, err)

	_, _, err = svc.CheckIn(ctx, member.ID, domain.StatusPresent, false)
	require.NoError(t, err)
	require.Len(t, repo.records, 2)

	dayKey, err := svc.MarkAbsent(ctx, member.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", dayKey)
	require.Len(t, repo.records, 1)
	assert.True(t, repo.records[0].Date.Equal(pastDate))
}

func TestMarkAbsentWithoutRecordSucceeds(t *testing.T) {
	svc, _, member := newAttendanceFixture(t, sundayNoonKST)

	dayKey, err := svc.MarkAbsent(context.Background(), member.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", dayKey)
}

func TestMarkAbsentWeekdayRequiresAdmin(t *testing.T) {
	svc, _, member := newAttendanceFixture(t, mondayNoonKST)
	ctx := context.Background()

	_, err := svc.MarkAbsent(ctx, member.ID, false)
	assert.ErrorIs(t, err, domain.ErrAdminRequired)

	_, err = svc.MarkAbsent(ctx, member.ID, true)
	assert.NoError(t, err)
}
