package accrual

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/leavebalance"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunSummary reports what one accrual pass did to the ledger.
type RunSummary struct {
	Period      string `json:"period"`
	LeaveTypes  int    `json:"leave_types"`
	RowsUpdated int    `json:"rows_updated"`
	RowsCreated int    `json:"rows_created"`
	RowsFailed  int    `json:"rows_failed"`
}

//go:generate mockgen -source=accrual_service.go -destination=mock/accrual_service_mock.go -package=mock
type Service interface {
	RunMonthlyAccrual(ctx context.Context, asOf time.Time) (RunSummary, error)
	RunYearEndCarryForward(ctx context.Context, asOf time.Time) (RunSummary, error)
}

type service struct {
	db         *sql.DB
	balances   leavebalance.Repository
	leaveTypes leavetype.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	balances leavebalance.Repository,
	leaveTypes leavetype.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, balances, leaveTypes, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	balances leavebalance.Repository,
	leaveTypes leavetype.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("accrual.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("accrual.service")
	}
	return &service{
		db:         db,
		balances:   balances,
		leaveTypes: leaveTypes,
		outbox:     outboxRepo,
		logger:     l,
	}
}

// RunMonthlyAccrual credits floor(annual/12) days to every current-year
// ledger row of each active MONTHLY policy. Each row commits on its own; a
// failed row is logged and skipped so one bad record cannot stall the run.
// The engine itself is not guarded against running twice for the same month;
// callers serialize runs per period.
func (s *service) RunMonthlyAccrual(ctx context.Context, asOf time.Time) (RunSummary, error) {
	asOf = asOf.UTC()
	summary := RunSummary{Period: asOf.Format("2006-01")}

	s.logger.Info("monthly accrual started", zap.String("period", summary.Period))

	monthlyTypes, err := s.leaveTypes.FindActiveByAccrualType(ctx, leavetype.AccrualMonthly)
	if err != nil {
		return summary, err
	}
	summary.LeaveTypes = len(monthlyTypes)

	for i := range monthlyTypes {
		lt := &monthlyTypes[i]
		monthly := lt.AnnualAllocation / 12
		if monthly == 0 {
			s.logger.Debug("monthly accrual skipped, allocation under one day per month",
				zap.String("leave_type_id", lt.ID.String()),
				zap.Int("annual_allocation", lt.AnnualAllocation),
			)
			continue
		}

		rows, err := s.balances.FindAllByTypeAndYear(ctx, lt.ID.String(), asOf.Year())
		if err != nil {
			return summary, err
		}

		for j := range rows {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			if err := s.creditRow(ctx, &rows[j], monthly); err != nil {
				summary.RowsFailed++
				s.logger.Error("monthly accrual row failed",
					zap.String("balance_id", rows[j].ID.String()),
					zap.String("leave_type_id", lt.ID.String()),
					zap.Error(err),
				)
				continue
			}
			summary.RowsUpdated++
		}
	}

	s.publishRunEvent(ctx, events.AccrualRunMonthly, summary)
	s.logger.Info("monthly accrual finished",
		zap.String("period", summary.Period),
		zap.Int("rows_updated", summary.RowsUpdated),
		zap.Int("rows_failed", summary.RowsFailed),
	)

	return summary, nil
}

func (s *service) creditRow(ctx context.Context, b *leavebalance.LeaveBalance, days int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.balances.WithTx(tx)

	// The batch snapshot may be stale by the time this row's turn comes; a
	// debit committed in between must not be reverted by the save.
	row, err := qtx.FindByUserTypeYear(ctx, b.UserID.String(), b.LeaveTypeID.String(), b.Year)
	if err != nil {
		return err
	}

	row.TotalAllocated += days
	row.RemainingDays += days
	if err := qtx.Update(ctx, row); err != nil {
		return err
	}

	return tx.Commit()
}

// RunYearEndCarryForward rolls unused previous-year days into asOf's year for
// every active carry-forward policy. The carried amount overwrites whatever
// the current-year row held, so reruns converge instead of double-counting.
// Rows with nothing left to carry are untouched.
func (s *service) RunYearEndCarryForward(ctx context.Context, asOf time.Time) (RunSummary, error) {
	asOf = asOf.UTC()
	currentYear := asOf.Year()
	previousYear := currentYear - 1
	summary := RunSummary{Period: asOf.Format("2006")}

	s.logger.Info("year-end carry forward started",
		zap.Int("from_year", previousYear),
		zap.Int("to_year", currentYear),
	)

	carryTypes, err := s.leaveTypes.FindActiveCarryForward(ctx)
	if err != nil {
		return summary, err
	}
	summary.LeaveTypes = len(carryTypes)

	for i := range carryTypes {
		lt := &carryTypes[i]

		prevRows, err := s.balances.FindAllByTypeAndYear(ctx, lt.ID.String(), previousYear)
		if err != nil {
			return summary, err
		}

		for j := range prevRows {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			prev := &prevRows[j]
			// Pending days are holds, not spend; they do not reduce what
			// carries over.
			remaining := prev.TotalAllocated + prev.CarriedForwardDays - prev.UsedDays
			if remaining <= 0 {
				continue
			}

			carry := remaining
			if lt.MaxCarryForwardDays != nil && carry > *lt.MaxCarryForwardDays {
				carry = *lt.MaxCarryForwardDays
			}

			created, err := s.carryRow(ctx, lt, prev, currentYear, carry)
			if err != nil {
				summary.RowsFailed++
				s.logger.Error("carry forward row failed",
					zap.String("user_id", prev.UserID.String()),
					zap.String("leave_type_id", lt.ID.String()),
					zap.Error(err),
				)
				continue
			}
			if created {
				summary.RowsCreated++
			} else {
				summary.RowsUpdated++
			}
		}
	}

	s.publishRunEvent(ctx, events.AccrualRunYearEnd, summary)
	s.logger.Info("year-end carry forward finished",
		zap.String("period", summary.Period),
		zap.Int("rows_updated", summary.RowsUpdated),
		zap.Int("rows_created", summary.RowsCreated),
		zap.Int("rows_failed", summary.RowsFailed),
	)

	return summary, nil
}

func (s *service) carryRow(
	ctx context.Context,
	lt *leavetype.LeaveType,
	prev *leavebalance.LeaveBalance,
	currentYear int,
	carry int,
) (created bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.balances.WithTx(tx)

	current, err := qtx.FindByUserTypeYear(ctx, prev.UserID.String(), lt.ID.String(), currentYear)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		current = &leavebalance.LeaveBalance{
			ID:             uuid.New(),
			UserID:         prev.UserID,
			LeaveTypeID:    lt.ID,
			Year:           currentYear,
			TotalAllocated: lt.AnnualAllocation,
			OrganizationID: prev.OrganizationID,
		}
		current.CarriedForwardDays = carry
		current.Recompute()
		if err := qtx.Create(ctx, current); err != nil {
			return false, err
		}
		return true, tx.Commit()
	}

	current.CarriedForwardDays = carry
	current.Recompute()
	if err := qtx.Update(ctx, current); err != nil {
		return false, err
	}
	return false, tx.Commit()
}

func (s *service) publishRunEvent(ctx context.Context, kind string, summary RunSummary) {
	if s.outbox == nil {
		return
	}

	event := events.AccrualRunCompletedEvent{
		EventType:   "leave_accrual.run_completed",
		RunKind:     kind,
		Period:      summary.Period,
		RowsUpdated: summary.RowsUpdated,
		RowsCreated: summary.RowsCreated,
		RowsFailed:  summary.RowsFailed,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal accrual event failed", zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_accrual",
		AggregateID:   summary.Period,
		EventType:     event.EventType,
		Topic:         events.AccrualRunCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("accrual outbox persist failed", zap.Error(err))
	}
}
