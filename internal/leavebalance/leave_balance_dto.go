package leavebalance

import "go-hrms/internal/leavetype"

type AssignLeaveTypeRequest struct {
	UserIDs        []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
	OrganizationID *string  `json:"organization_id" binding:"omitempty,uuid"`
}

type BulkAssignRequest struct {
	UserIDs        []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
	LeaveTypeIDs   []string `json:"leave_type_ids" binding:"required,min=1,dive,uuid"`
	OrganizationID *string  `json:"organization_id" binding:"omitempty,uuid"`
}

type LeaveBalanceResponse struct {
	ID                 string                       `json:"id"`
	UserID             string                       `json:"user_id"`
	LeaveTypeID        string                       `json:"leave_type_id"`
	LeaveType          *leavetype.LeaveTypeResponse `json:"leave_type,omitempty"`
	TotalAllocated     int                          `json:"total_allocated"`
	UsedDays           int                          `json:"used_days"`
	PendingDays        int                          `json:"pending_days"`
	CarriedForwardDays int                          `json:"carried_forward_days"`
	RemainingDays      int                          `json:"remaining_days"`
	AvailableBalance   int                          `json:"available_balance"`
	Year               int                          `json:"year"`
	OrganizationID     string                       `json:"organization_id,omitempty"`
	CreatedAt          string                       `json:"created_at,omitempty"`
	UpdatedAt          string                       `json:"updated_at,omitempty"`
}
