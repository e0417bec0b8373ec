package events

import "time"

const AccrualRunCompletedTopic = "hr.leave.accrual.v1"

const (
	AccrualRunMonthly = "MONTHLY"
	AccrualRunYearEnd = "YEAR_END"
)

// AccrualRunCompletedEvent summarizes one scheduler run over the ledger.
type AccrualRunCompletedEvent struct {
	EventType   string    `json:"event_type"`
	RunKind     string    `json:"run_kind"`
	Period      string    `json:"period"`
	RowsUpdated int       `json:"rows_updated"`
	RowsCreated int       `json:"rows_created"`
	RowsFailed  int       `json:"rows_failed"`
	OccurredAt  time.Time `json:"occurred_at"`
}
