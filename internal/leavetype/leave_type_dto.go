package leavetype

type CreateLeaveTypeRequest struct {
	Name                  string   `json:"name" binding:"required,max=100"`
	Description           string   `json:"description"`
	AnnualAllocation      int      `json:"annual_allocation" binding:"min=0"`
	CarryForwardAllowed   bool     `json:"carry_forward_allowed"`
	MaxCarryForwardDays   *int     `json:"max_carry_forward_days" binding:"omitempty,min=0"`
	MaxConsecutiveDays    *int     `json:"max_consecutive_days" binding:"omitempty,min=1"`
	ApprovalRequired      *bool    `json:"approval_required"`
	AccrualType           string   `json:"accrual_type" binding:"required,oneof=MONTHLY YEARLY"`
	ApplicableRoles       []string `json:"applicable_roles" binding:"required,min=1,dive,oneof=EMPLOYEE REPORTING_MANAGER HR_ADMIN"`
	HasBalanceRestriction *bool    `json:"has_balance_restriction"`
	OrganizationID        *string  `json:"organization_id" binding:"omitempty,uuid"`
}

// UpdateLeaveTypeRequest is a partial patch; nil fields keep their current
// value. The carry-forward invariant is revalidated after the merge.
type UpdateLeaveTypeRequest struct {
	Name                  *string  `json:"name" binding:"omitempty,max=100"`
	Description           *string  `json:"description"`
	AnnualAllocation      *int     `json:"annual_allocation" binding:"omitempty,min=0"`
	CarryForwardAllowed   *bool    `json:"carry_forward_allowed"`
	MaxCarryForwardDays   *int     `json:"max_carry_forward_days" binding:"omitempty,min=0"`
	MaxConsecutiveDays    *int     `json:"max_consecutive_days" binding:"omitempty,min=1"`
	ApprovalRequired      *bool    `json:"approval_required"`
	AccrualType           *string  `json:"accrual_type" binding:"omitempty,oneof=MONTHLY YEARLY"`
	ApplicableRoles       []string `json:"applicable_roles" binding:"omitempty,min=1,dive,oneof=EMPLOYEE REPORTING_MANAGER HR_ADMIN"`
	HasBalanceRestriction *bool    `json:"has_balance_restriction"`
}

type BootstrapDefaultsRequest struct {
	OrganizationID *string `json:"organization_id" binding:"omitempty,uuid"`
}

type LeaveTypeResponse struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description,omitempty"`
	AnnualAllocation      int      `json:"annual_allocation"`
	CarryForwardAllowed   bool     `json:"carry_forward_allowed"`
	MaxCarryForwardDays   *int     `json:"max_carry_forward_days,omitempty"`
	MaxConsecutiveDays    *int     `json:"max_consecutive_days,omitempty"`
	ApprovalRequired      bool     `json:"approval_required"`
	AccrualType           string   `json:"accrual_type"`
	ApplicableRoles       []string `json:"applicable_roles"`
	IsActive              bool     `json:"is_active"`
	IsSystemDefault       bool     `json:"is_system_default"`
	HasBalanceRestriction bool     `json:"has_balance_restriction"`
	OrganizationID        string   `json:"organization_id,omitempty"`
	CreatedAt             string   `json:"created_at,omitempty"`
	UpdatedAt             string   `json:"updated_at,omitempty"`
}
