package leavetype

import (
	"time"

	"github.com/google/uuid"
)

const (
	AccrualMonthly = "MONTHLY"
	AccrualYearly  = "YEARLY"
)

// LeaveType is an entitlement policy: how many days a year it grants, how
// they accrue, whether unused days roll over, and which roles may hold it.
type LeaveType struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_leave_types_name"`
	Description string    `gorm:"column:description;type:text"`

	AnnualAllocation    int  `gorm:"column:annual_allocation;type:int;not null;default:0"`
	CarryForwardAllowed bool `gorm:"column:carry_forward_allowed;not null;default:false"`
	// Required whenever carry_forward_allowed is true.
	MaxCarryForwardDays *int `gorm:"column:max_carry_forward_days;type:int"`
	// Consumed by the leave-request approval process, not enforced here.
	MaxConsecutiveDays *int   `gorm:"column:max_consecutive_days;type:int"`
	ApprovalRequired   bool   `gorm:"column:approval_required;not null;default:true"`
	AccrualType        string `gorm:"column:accrual_type;type:varchar(10);not null;default:'YEARLY'"`

	ApplicableRoles []string `gorm:"column:applicable_roles;type:jsonb;serializer:json"`

	IsActive        bool `gorm:"column:is_active;not null;default:true"`
	IsSystemDefault bool `gorm:"column:is_system_default;not null;default:false"`
	// False for entitlements like Loss of Pay: the ledger row still exists
	// but callers skip balance checks when debiting.
	HasBalanceRestriction bool `gorm:"column:has_balance_restriction;not null;default:true"`

	OrganizationID *uuid.UUID `gorm:"column:organization_id;type:uuid;index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// AllowsRole reports whether the policy is applicable to the given role.
func (lt *LeaveType) AllowsRole(role string) bool {
	for _, r := range lt.ApplicableRoles {
		if r == role {
			return true
		}
	}
	return false
}
