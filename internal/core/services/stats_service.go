package services

import (
	"context"
	"time"

	"moimcheck/internal/adapters/persistence/repositories"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/pkg/kst"
)

// StatsService builds group-level attendance summaries from the ledger
type StatsService struct {
	attendanceRepo repositories.AttendanceRepository

	now func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(attendanceRepo repositories.AttendanceRepository) *StatsService {
	return &StatsService{
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

// PeriodStats summarizes attendance over one window of meeting days
type PeriodStats struct {
	PerformedDays   int64   `json:"performed_days"`
	TotalAttendance int64   `json:"total_attendance"`
	AvgAttendance   float64 `json:"avg_attendance"`
}

// GroupStats is the whole-group dashboard view
type GroupStats struct {
	Date       string      `json:"date"`
	TodayCount int64       `json:"today_count"`
	Month      PeriodStats `json:"month"`
	AllTime    PeriodStats `json:"all_time"`
}

// Overview returns today's headcount plus month-to-date and all-time
// summaries. Averages over zero meeting days are zero, not NaN.
func (s *StatsService) Overview(ctx context.Context) (*GroupStats, error) {
	todayKey := kst.DayKey(s.now())
	today, err := kst.DayStart(todayKey)
	if err != nil {
		return nil, err
	}
	monthStartKey, err := kst.MonthStartKey(todayKey)
	if err != nil {
		return nil, err
	}
	monthStart, err := kst.DayStart(monthStartKey)
	if err != nil {
		return nil, err
	}

	todayCount, err := s.attendanceRepo.CountOnDay(ctx, today, domain.PresenceStatuses)
	if err != nil {
		return nil, err
	}

	month, err := s.periodStats(ctx, &monthStart)
	if err != nil {
		return nil, err
	}
	allTime, err := s.periodStats(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &GroupStats{
		Date:       todayKey,
		TodayCount: todayCount,
		Month:      *month,
		AllTime:    *allTime,
	}, nil
}

func (s *StatsService) periodStats(ctx context.Context, from *time.Time) (*PeriodStats, error) {
	days, err := s.attendanceRepo.DistinctDays(ctx, from)
	if err != nil {
		return nil, err
	}

	perDay, err := s.attendanceRepo.GroupCountByDay(ctx, from, domain.PresenceStatuses)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range perDay {
		total += n
	}

	avg := 0.0
	if days > 0 {
		avg = float64(total) / float64(days)
	}

	return &PeriodStats{
		PerformedDays:   days,
		TotalAttendance: total,
		AvgAttendance:   avg,
	}, nil
}
