package services

import (
	"context"
	"time"

	"moimcheck/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the SQL semantics of the GORM
// implementations.

type fakeMemberRepo struct {
	members []*models.Member
}

func (r *fakeMemberRepo) Create(_ context.Context, m *models.Member) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.members = append(r.members, m)
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id string) (*models.Member, error) {
	for _, m := range r.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMemberRepo) ListActive(_ context.Context) ([]*models.Member, error) {
	out := make([]*models.Member, 0, len(r.members))
	for _, m := range r.members {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v, ok := fields["name"]; ok {
		m.Name = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		m.Phone = v.(string)
	}
	if v, ok := fields["photo_url"]; ok {
		m.PhotoURL = v.(string)
	}
	if v, ok := fields["birth_date"]; ok {
		m.BirthDate = v.(time.Time)
	}
	m.UpdatedAt = time.Now()
	return nil
}

func (r *fakeMemberRepo) Deactivate(ctx context.Context, id string) error {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	m.IsActive = false
	return nil
}

type fakeAttendanceRepo struct {
	records []*models.Attendance
}

func statusIn(status string, statuses []string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, rec *models.Attendance) (*models.Attendance, error) {
	for _, existing := range r.records {
		if existing.MemberID == rec.MemberID && existing.Date.Equal(rec.Date) {
			existing.Status = rec.Status
			existing.Points = rec.Points
			existing.UpdatedAt = time.Now()
			return existing, nil
		}
	}
	stored := &models.Attendance{
		ID:       uuid.NewString(),
		MemberID: rec.MemberID,
		Date:     rec.Date,
		Status:   rec.Status,
		Points:   rec.Points,
	}
	r.records = append(r.records, stored)
	return stored, nil
}

func (r *fakeAttendanceRepo) DeleteForDay(_ context.Context, memberID string, date time.Time) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.MemberID == memberID && rec.Date.Equal(date) {
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return nil
}

func (r *fakeAttendanceRepo) CountInRange(_ context.Context, memberID string, from time.Time, statuses []string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.MemberID == memberID && !rec.Date.Before(from) && statusIn(rec.Status, statuses) {
			n++
		}
	}
	return n, nil
}

func (r *fakeAttendanceRepo) SumPoints(_ context.Context, memberID string, from *time.Time, statuses []string) (int64, error) {
	var sum int64
	for _, rec := range r.records {
		if rec.MemberID != memberID || !statusIn(rec.Status, statuses) {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		sum += int64(rec.Points)
	}
	return sum, nil
}

func (r *fakeAttendanceRepo) DistinctDays(_ context.Context, from *time.Time) (int64, error) {
	days := map[int64]struct{}{}
	for _, rec := range r.records {
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		days[rec.Date.UnixNano()] = struct{}{}
	}
	return int64(len(days)), nil
}

func (r *fakeAttendanceRepo) StatusOnDay(_ context.Context, date time.Time) (map[string]string, error) {
	out := map[string]string{}
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			out[rec.MemberID] = rec.Status
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountOnDay(_ context.Context, date time.Time, statuses []string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.Date.Equal(date) && statusIn(rec.Status, statuses) {
			n++
		}
	}
	return n, nil
}

func (r *fakeAttendanceRepo) GroupCountByMember(_ context.Context, from time.Time, statuses []string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, rec := range r.records {
		if !rec.Date.Before(from) && statusIn(rec.Status, statuses) {
			out[rec.MemberID]++
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GroupSumByMember(_ context.Context, statuses []string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, rec := range r.records {
		if statusIn(rec.Status, statuses) {
			out[rec.MemberID] += int64(rec.Points)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GroupCountByDay(_ context.Context, from *time.Time, statuses []string) (map[time.Time]int64, error) {
	out := map[time.Time]int64{}
	for _, rec := range r.records {
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		if statusIn(rec.Status, statuses) {
			out[rec.Date.UTC()]++
		}
	}
	return out, nil
}

type fakeAdminRepo struct {
	admins []*models.Admin
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	r.admins = append(r.admins, admin)
	return nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.admins)), nil
}

type fakeSessionRepo struct {
	adminRepo *fakeAdminRepo
	sessions  map[string]*models.AdminSession
}

func newFakeSessionRepo(adminRepo *fakeAdminRepo) *fakeSessionRepo {
	return &fakeSessionRepo{
		adminRepo: adminRepo,
		sessions:  map[string]*models.AdminSession{},
	}
}

func (r *fakeSessionRepo) Upsert(_ context.Context, session *models.AdminSession) error {
	r.sessions[session.TokenHash] = &models.AdminSession{
		TokenHash: session.TokenHash,
		AdminID:   session.AdminID,
		ExpiresAt: session.ExpiresAt,
	}
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.AdminSession, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, a := range r.adminRepo.admins {
		if a.ID == session.AdminID {
			session.Admin = a
			break
		}
	}
	return session, nil
}

func (r *fakeSessionRepo) UpdateExpiry(_ context.Context, tokenHash string, expiresAt time.Time) error {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	session.ExpiresAt = expiresAt
	return nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}
