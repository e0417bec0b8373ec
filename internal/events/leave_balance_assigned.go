package events

import "time"

const LeaveBalanceAssignedTopic = "hr.leave.balance.v1"

// LeaveBalanceAssignedEvent is published after a ledger row is created for a
// user, one event per row.
type LeaveBalanceAssignedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	BalanceID      string    `json:"balance_id"`
	UserID         string    `json:"user_id"`
	LeaveTypeID    string    `json:"leave_type_id"`
	Year           int       `json:"year"`
	TotalAllocated int       `json:"total_allocated"`
	OccurredAt     time.Time `json:"occurred_at"`
}
