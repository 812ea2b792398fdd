package services

import (
	"context"
	"testing"
	"time"

	"moimcheck/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsFixture(t *testing.T, now time.Time) (*StatsService, *fakeAttendanceRepo) {
	t.Helper()
	attendanceRepo := &fakeAttendanceRepo{}
	svc := NewStatsService(attendanceRepo)
	svc.now = func() time.Time { return now }
	return svc, attendanceRepo
}

func TestOverview(t *testing.T) {
	svc, repo := newStatsFixture(t, sundayNoonKST)

	// February: one meeting with one attendee. March: today, two attendees.
	addRecord(t, repo, "m1", "2024-02-04", domain.StatusPresent)
	addRecord(t, repo, "m1", "2024-03-10", domain.StatusPresent)
	addRecord(t, repo, "m2", "2024-03-10", domain.StatusLate)

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10", stats.Date)
	assert.Equal(t, int64(2), stats.TodayCount)

	assert.Equal(t, int64(1), stats.Month.PerformedDays)
	assert.Equal(t, int64(2), stats.Month.TotalAttendance)
	assert.Equal(t, 2.0, stats.Month.AvgAttendance)

	assert.Equal(t, int64(2), stats.AllTime.PerformedDays)
	assert.Equal(t, int64(3), stats.AllTime.TotalAttendance)
	assert.Equal(t, 1.5, stats.AllTime.AvgAttendance)
}

func TestOverviewEmptyLedger(t *testing.T) {
	svc, _ := newStatsFixture(t, sundayNoonKST)

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TodayCount)
	assert.Equal(t, int64(0), stats.AllTime.PerformedDays)
	assert.Equal(t, 0.0, stats.AllTime.AvgAttendance)
	assert.Equal(t, 0.0, stats.Month.AvgAttendance)
}
