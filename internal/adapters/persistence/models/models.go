package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Members
// ============================================================

// Member represents the members table. Members are never physically
// removed: "delete" flips IsActive to false.
type Member struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:30;not null" json:"phone"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birth_date"`
	PhotoURL  string    `gorm:"size:500" json:"photo_url"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Attendance
// ============================================================

// Attendance represents the attendance table. Date is the absolute instant
// of KST midnight for the record's calendar day, so (member_id, date) is
// unique per local day. Points are fixed at write time.
type Attendance struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	MemberID  string    `gorm:"size:36;not null;uniqueIndex:idx_attendance_member_date" json:"member_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_attendance_member_date;index" json:"date"`
	Status    string    `gorm:"size:10;not null" json:"status"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Admin & Sessions
// ============================================================

// Admin represents the admins table
type Admin struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AdminSession represents the admin_sessions table. Keyed by the SHA-256
// hash of the bearer token for O(1) lookup; the plaintext token is never
// stored. Expired rows are purged lazily at lookup time.
type AdminSession struct {
	TokenHash string    `gorm:"primaryKey;size:64" json:"-"`
	AdminID   string    `gorm:"size:36;not null;index" json:"admin_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Admin *Admin `gorm:"foreignKey:AdminID" json:"-"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&Attendance{},
		&Admin{},
		&AdminSession{},
	)
}
