package leavebalance

import (
	"time"

	"go-hrms/internal/leavetype"

	"github.com/google/uuid"
)

// LeaveBalance is one ledger row: a user's entitlement for one leave type in
// one calendar year. The unique index makes the (user, type, year) pair the
// idempotency guard for assignment.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_leave_balances_user_type_year"`
	LeaveTypeID uuid.UUID `gorm:"column:leave_type_id;type:uuid;not null;uniqueIndex:uq_leave_balances_user_type_year"`
	Year        int       `gorm:"column:year;type:int;not null;uniqueIndex:uq_leave_balances_user_type_year"`

	TotalAllocated     int `gorm:"column:total_allocated;type:int;not null;default:0"`
	UsedDays           int `gorm:"column:used_days;type:int;not null;default:0"`
	PendingDays        int `gorm:"column:pending_days;type:int;not null;default:0"`
	CarriedForwardDays int `gorm:"column:carried_forward_days;type:int;not null;default:0"`
	RemainingDays      int `gorm:"column:remaining_days;type:int;not null;default:0"`

	OrganizationID *uuid.UUID `gorm:"column:organization_id;type:uuid;index"`

	LeaveType *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Recompute restores the ledger invariant after any mutation of the
// component columns.
func (b *LeaveBalance) Recompute() {
	b.RemainingDays = b.TotalAllocated + b.CarriedForwardDays - b.UsedDays - b.PendingDays
}

// AvailableBalance is what a user can still spend right now, derived from
// the component columns rather than the stored remaining_days.
func (b *LeaveBalance) AvailableBalance() int {
	return b.TotalAllocated + b.CarriedForwardDays - b.UsedDays - b.PendingDays
}
