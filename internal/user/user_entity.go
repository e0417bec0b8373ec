package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee         = "EMPLOYEE"
	RoleReportingManager = "REPORTING_MANAGER"
	RoleHRAdmin          = "HR_ADMIN"
)

type User struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName       string     `gorm:"column:full_name;type:varchar(255)"`
	Email          string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	Password       string     `gorm:"column:password;type:text;not null"`
	Role           string     `gorm:"column:role;type:varchar(50);not null;default:'EMPLOYEE'"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true"`
	OrganizationID *uuid.UUID `gorm:"column:organization_id;type:uuid;index"`

	// Login lockout guard. Five failed attempts lock the account until
	// locked_until; a successful login clears both.
	FailedLoginAttempts int        `gorm:"column:failed_login_attempts;type:int;not null;default:0"`
	LockedUntil         *time.Time `gorm:"column:locked_until"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// IsLocked reports whether the lockout window is still in effect at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
