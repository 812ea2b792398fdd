package repositories

import (
	"context"
	"time"

	"moimcheck/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert inserts or overwrites the record for (member_id, date). Concurrent
// check-ins race at the unique constraint; the store keeps one row and the
// last committed write wins.
func (r *attendanceRepository) Upsert(ctx context.Context, rec *models.Attendance) (*models.Attendance, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "points", "updated_at"}),
		}).
		Create(rec).Error
	if err != nil {
		return nil, err
	}

	// On conflict the generated ID above does not match the surviving row;
	// read back the stored record.
	var stored models.Attendance
	err = r.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", rec.MemberID, rec.Date).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteForDay deletes the record for (member_id, date); no-op when absent
func (r *attendanceRepository) DeleteForDay(ctx context.Context, memberID string, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, date).
		Delete(&models.Attendance{}).Error
}

// CountInRange counts a member's records from `from` onward
func (r *attendanceRepository) CountInRange(ctx context.Context, memberID string, from time.Time, statuses []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("member_id = ? AND date >= ? AND status IN ?", memberID, from, statuses).
		Count(&count).Error
	return count, err
}

// SumPoints sums a member's persisted points; 0 when no rows match
func (r *attendanceRepository) SumPoints(ctx context.Context, memberID string, from *time.Time, statuses []string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("member_id = ? AND status IN ?", memberID, statuses)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}

	var total int64
	err := query.Select("COALESCE(SUM(points), 0)").Scan(&total).Error
	return total, err
}

// DistinctDays counts distinct day keys with any record, across all members
func (r *attendanceRepository) DistinctDays(ctx context.Context, from *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}

	var count int64
	err := query.Distinct("date").Count(&count).Error
	return count, err
}

// StatusOnDay returns memberID → status for every record on exactly that day
func (r *attendanceRepository) StatusOnDay(ctx context.Context, date time.Time) (map[string]string, error) {
	var rows []struct {
		MemberID string
		Status   string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select("member_id", "status").
		Where("date = ?", date).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(rows))
	for _, row := range rows {
		result[row.MemberID] = row.Status
	}
	return result, nil
}

// CountOnDay counts records on exactly that day matching the filter
func (r *attendanceRepository) CountOnDay(ctx context.Context, date time.Time, statuses []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("date = ? AND status IN ?", date, statuses).
		Count(&count).Error
	return count, err
}

// GroupCountByMember returns memberID → record count from `from` onward
func (r *attendanceRepository) GroupCountByMember(ctx context.Context, from time.Time, statuses []string) (map[string]int64, error) {
	var rows []struct {
		MemberID string
		Cnt      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select("member_id, COUNT(*) AS cnt").
		Where("date >= ? AND status IN ?", from, statuses).
		Group("member_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.MemberID] = row.Cnt
	}
	return result, nil
}

// GroupSumByMember returns memberID → all-time point total
func (r *attendanceRepository) GroupSumByMember(ctx context.Context, statuses []string) (map[string]int64, error) {
	var rows []struct {
		MemberID string
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select("member_id, COALESCE(SUM(points), 0) AS total").
		Where("status IN ?", statuses).
		Group("member_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.MemberID] = row.Total
	}
	return result, nil
}

// GroupCountByDay returns day → headcount from `from` onward (nil = all time)
func (r *attendanceRepository) GroupCountByDay(ctx context.Context, from *time.Time, statuses []string) (map[time.Time]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select("date, COUNT(*) AS cnt").
		Where("status IN ?", statuses).
		Group("date")
	if from != nil {
		query = query.Where("date >= ?", *from)
	}

	var rows []struct {
		Date time.Time
		Cnt  int64
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[time.Time]int64, len(rows))
	for _, row := range rows {
		result[row.Date.UTC()] = row.Cnt
	}
	return result, nil
}
