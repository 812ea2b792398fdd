package services

import (
	"context"
	"errors"
	"time"

	"moimcheck/internal/adapters/persistence/models"
	"moimcheck/internal/adapters/persistence/repositories"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/pkg/kst"

	"gorm.io/gorm"
)

// AttendanceService applies the check-in policy on top of the day-agnostic
// ledger: mutations always target the server-computed KST "today", and on
// any day other than Sunday they require an admin session. The caller tells
// us whether one is present; the weekday comes from the same fixed-offset
// calendar as every other date boundary.
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	memberRepo     repositories.MemberRepository

	now func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	memberRepo repositories.MemberRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		now:            time.Now,
	}
}

// CheckIn upserts today's attendance record for a member. Repeated calls are
// safe: one record per (member, day), last committed write wins. Returns the
// stored record and the day key it was bucketed under.
func (s *AttendanceService) CheckIn(ctx context.Context, memberID string, status domain.AttendanceStatus, hasAdmin bool) (*models.Attendance, string, error) {
	if !status.Persistable() {
		return nil, "", domain.ErrInvalidStatus
	}

	todayKey := kst.DayKey(s.now())
	if !kst.IsSunday(todayKey) && !hasAdmin {
		return nil, "", domain.ErrAdminRequired
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrMemberNotFound
		}
		return nil, "", err
	}
	if !member.IsActive {
		return nil, "", domain.ErrMemberNotFound
	}

	date, err := kst.DayStart(todayKey)
	if err != nil {
		return nil, "", err
	}

	rec := &models.Attendance{
		MemberID: memberID,
		Date:     date,
		Status:   string(status),
		Points:   domain.PointsFor(status),
	}
	stored, err := s.attendanceRepo.Upsert(ctx, rec)
	if err != nil {
		return nil, "", err
	}
	return stored, todayKey, nil
}

// MarkAbsent deletes today's record for a member. Deleting a nonexistent
// record succeeds silently; the day key used is always returned. Gated the
// same way as CheckIn.
func (s *AttendanceService) MarkAbsent(ctx context.Context, memberID string, hasAdmin bool) (string, error) {
	todayKey := kst.DayKey(s.now())
	if !kst.IsSunday(todayKey) && !hasAdmin {
		return "", domain.ErrAdminRequired
	}

	date, err := kst.DayStart(todayKey)
	if err != nil {
		return "", err
	}

	if err := s.attendanceRepo.DeleteForDay(ctx, memberID, date); err != nil {
		return "", err
	}
	return todayKey, nil
}
