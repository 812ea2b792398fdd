package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"moimcheck/internal/adapters/persistence/models"
	"moimcheck/internal/adapters/persistence/repositories"
	"moimcheck/internal/core/domain"
	"moimcheck/internal/pkg/kst"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const birthDateLayout = "2006-01-02"

// MemberService handles member records and the aggregated views built on
// top of the attendance ledger (ranked roster, per-member statistics).
type MemberService struct {
	memberRepo     repositories.MemberRepository
	attendanceRepo repositories.AttendanceRepository
	validate       *validator.Validate

	now func() time.Time
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repositories.MemberRepository,
	attendanceRepo repositories.AttendanceRepository,
) *MemberService {
	return &MemberService{
		memberRepo:     memberRepo,
		attendanceRepo: attendanceRepo,
		validate:       validator.New(),
		now:            time.Now,
	}
}

// CreateMemberInput represents member creation input
type CreateMemberInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=30"`
	BirthDate string `json:"birth_date" validate:"required"`
	PhotoURL  string `json:"photo_url" validate:"required,max=500"`
}

// UpdateMemberInput represents a partial member update; nil fields are
// left unchanged
type UpdateMemberInput struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	PhotoURL  *string `json:"photo_url"`
}

// Create creates a new member
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.PhotoURL = strings.TrimSpace(input.PhotoURL)

	if err := s.validate.Struct(input); err != nil {
		return nil, domain.ErrInvalidInput
	}

	birthDate, err := time.Parse(birthDateLayout, input.BirthDate)
	if err != nil {
		return nil, domain.ErrInvalidBirthDate
	}

	member := &models.Member{
		Name:      input.Name,
		Phone:     input.Phone,
		BirthDate: birthDate.UTC(),
		PhotoURL:  input.PhotoURL,
		IsActive:  true,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	log.Printf("✅ Member created: %s", member.Name)
	return member, nil
}

// Update applies a partial update to a member
func (s *MemberService) Update(ctx context.Context, id string, input *UpdateMemberInput) error {
	if _, err := s.getActive(ctx, id); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		fields["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.PhotoURL != nil {
		fields["photo_url"] = strings.TrimSpace(*input.PhotoURL)
	}
	if input.BirthDate != nil {
		birthDate, err := time.Parse(birthDateLayout, *input.BirthDate)
		if err != nil {
			return domain.ErrInvalidBirthDate
		}
		fields["birth_date"] = birthDate.UTC()
	}

	if len(fields) == 0 {
		return domain.ErrNoChanges
	}

	return s.memberRepo.Update(ctx, id, fields)
}

// Deactivate soft-deletes a member; attendance history is kept
func (s *MemberService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.getActive(ctx, id); err != nil {
		return err
	}
	return s.memberRepo.Deactivate(ctx, id)
}

// RosterMember represents one row of the ranked member board
type RosterMember struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Phone               string    `json:"phone"`
	BirthDate           time.Time `json:"birth_date"`
	PhotoURL            string    `json:"photo_url"`
	YearAttendanceCount int64     `json:"year_attendance_count"`
	TotalPoints         int64     `json:"total_points"`
	TodayStatus         string    `json:"today_status"`
}

// Roster returns all active members annotated with current-year attendance
// count, all-time points and today's status, ranked by points descending
// (stable ties). Also returns the day key "today" was computed as.
func (s *MemberService) Roster(ctx context.Context) ([]RosterMember, string, error) {
	todayKey := kst.DayKey(s.now())
	today, err := kst.DayStart(todayKey)
	if err != nil {
		return nil, "", err
	}
	yearStartKey, err := kst.YearStartKey(todayKey)
	if err != nil {
		return nil, "", err
	}
	yearStart, err := kst.DayStart(yearStartKey)
	if err != nil {
		return nil, "", err
	}

	members, err := s.memberRepo.ListActive(ctx)
	if err != nil {
		return nil, "", err
	}

	yearCounts, err := s.attendanceRepo.GroupCountByMember(ctx, yearStart, domain.PresenceStatuses)
	if err != nil {
		return nil, "", err
	}
	pointTotals, err := s.attendanceRepo.GroupSumByMember(ctx, domain.PresenceStatuses)
	if err != nil {
		return nil, "", err
	}
	todayStatuses, err := s.attendanceRepo.StatusOnDay(ctx, today)
	if err != nil {
		return nil, "", err
	}

	roster := make([]RosterMember, 0, len(members))
	for _, m := range members {
		status, ok := todayStatuses[m.ID]
		if !ok {
			status = string(domain.StatusAbsent)
		}
		roster = append(roster, RosterMember{
			ID:                  m.ID,
			Name:                m.Name,
			Phone:               m.Phone,
			BirthDate:           m.BirthDate,
			PhotoURL:            m.PhotoURL,
			YearAttendanceCount: yearCounts[m.ID],
			TotalPoints:         pointTotals[m.ID],
			TodayStatus:         status,
		})
	}

	// Stable: equal point totals keep their retrieval order
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].TotalPoints > roster[j].TotalPoints
	})

	return roster, todayKey, nil
}

// WindowStats represents a member's attendance breakdown over one window
type WindowStats struct {
	Present     int64   `json:"present"`
	Late        int64   `json:"late"`
	Count       int64   `json:"count"`
	MeetingDays int64   `json:"meeting_days"`
	Rate        float64 `json:"rate"`
}

// MemberDetail represents the full per-member statistics view
type MemberDetail struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birth_date"`
	PhotoURL  string    `json:"photo_url"`
	Age       int       `json:"age"`

	TotalPoints int64 `json:"total_points"`
	YearPoints  int64 `json:"year_points"`

	Month WindowStats `json:"month"`
	Year  WindowStats `json:"year"`
}

// Detail returns a member with age, point totals and month/year attendance
// breakdowns. The rate denominator is the number of days the group met
// (distinct day keys across ALL members); a zero denominator yields a
// zero rate.
func (s *MemberService) Detail(ctx context.Context, id string) (*MemberDetail, error) {
	member, err := s.getActive(ctx, id)
	if err != nil {
		return nil, err
	}

	todayKey := kst.DayKey(s.now())
	monthStart, err := s.windowStart(kst.MonthStartKey, todayKey)
	if err != nil {
		return nil, err
	}
	yearStart, err := s.windowStart(kst.YearStartKey, todayKey)
	if err != nil {
		return nil, err
	}

	month, err := s.windowStats(ctx, id, monthStart)
	if err != nil {
		return nil, err
	}
	year, err := s.windowStats(ctx, id, yearStart)
	if err != nil {
		return nil, err
	}

	totalPoints, err := s.attendanceRepo.SumPoints(ctx, id, nil, domain.PresenceStatuses)
	if err != nil {
		return nil, err
	}
	yearPoints, err := s.attendanceRepo.SumPoints(ctx, id, &yearStart, domain.PresenceStatuses)
	if err != nil {
		return nil, err
	}

	return &MemberDetail{
		ID:          member.ID,
		Name:        member.Name,
		Phone:       member.Phone,
		BirthDate:   member.BirthDate,
		PhotoURL:    member.PhotoURL,
		Age:         kst.KoreanAge(member.BirthDate, s.now()),
		TotalPoints: totalPoints,
		YearPoints:  yearPoints,
		Month:       *month,
		Year:        *year,
	}, nil
}

func (s *MemberService) getActive(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}

func (s *MemberService) windowStart(truncate func(string) (string, error), todayKey string) (time.Time, error) {
	key, err := truncate(todayKey)
	if err != nil {
		return time.Time{}, err
	}
	return kst.DayStart(key)
}

func (s *MemberService) windowStats(ctx context.Context, memberID string, from time.Time) (*WindowStats, error) {
	present, err := s.attendanceRepo.CountInRange(ctx, memberID, from, []string{string(domain.StatusPresent)})
	if err != nil {
		return nil, err
	}
	late, err := s.attendanceRepo.CountInRange(ctx, memberID, from, []string{string(domain.StatusLate)})
	if err != nil {
		return nil, err
	}
	meetingDays, err := s.attendanceRepo.DistinctDays(ctx, &from)
	if err != nil {
		return nil, err
	}

	count := present + late
	rate := 0.0
	if meetingDays > 0 {
		rate = float64(count) / float64(meetingDays)
	}

	return &WindowStats{
		Present:     present,
		Late:        late,
		Count:       count,
		MeetingDays: meetingDays,
		Rate:        rate,
	}, nil
}
