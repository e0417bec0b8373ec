package leavebalance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hrms/internal/events"
	leavebalanceerrors "go-hrms/internal/leavebalance/errors"
	"go-hrms/internal/leavetype"
	leavetypeerrors "go-hrms/internal/leavetype/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_balance_service.go -destination=mock/leave_balance_service_mock.go -package=mock
type Service interface {
	AssignToUsers(ctx context.Context, leaveTypeID string, req AssignLeaveTypeRequest) ([]LeaveBalanceResponse, error)
	BulkAssign(ctx context.Context, req BulkAssignRequest) ([]LeaveBalanceResponse, error)
	GetUserBalances(ctx context.Context, userID string, year int) ([]LeaveBalanceResponse, error)
	GetUserBalanceByType(ctx context.Context, userID, leaveTypeID string, year int) (LeaveBalanceResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	leaveTypes leavetype.Repository
	users      user.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveTypes leavetype.Repository,
	users user.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, leaveTypes, users, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	leaveTypes leavetype.Repository,
	users user.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		leaveTypes: leaveTypes,
		users:      users,
		outbox:     outboxRepo,
		logger:     l,
	}
}

// AssignToUsers opens a ledger row for each eligible user for the current
// year. Users who already hold a row for (type, year) are skipped; only rows
// created by this call are returned.
func (s *service) AssignToUsers(ctx context.Context, leaveTypeID string, req AssignLeaveTypeRequest) ([]LeaveBalanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("assign leave type requested",
		zap.String("request_id", rid),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("user_count", len(req.UserIDs)),
	)

	// Deliberately not restricted to active types: HR may finish rolling out
	// a policy that was retired mid-assignment.
	lt, err := s.leaveTypes.FindByID(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return nil, err
	}

	targets, err := s.users.FindActiveByIDs(ctx, req.UserIDs)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, usererrors.ErrNoValidUsers
	}

	eligible := make([]user.User, 0, len(targets))
	for _, u := range targets {
		if lt.AllowsRole(u.Role) {
			eligible = append(eligible, u)
		}
	}
	if len(eligible) == 0 {
		return nil, leavebalanceerrors.ErrNoEligibleUsers
	}

	year := time.Now().UTC().Year()
	created := make([]LeaveBalance, 0, len(eligible))

	for _, u := range eligible {
		b, err := s.assignOne(ctx, rid, lt, u, year, req.OrganizationID)
		if err != nil {
			s.logger.Error("assign leave type failed for user",
				zap.String("request_id", rid),
				zap.String("user_id", u.ID.String()),
				zap.String("leave_type_id", leaveTypeID),
				zap.Error(err),
			)
			return nil, err
		}
		if b != nil {
			created = append(created, *b)
		}
	}

	s.logger.Info("assign leave type success",
		zap.String("request_id", rid),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("created", len(created)),
		zap.Int("skipped", len(eligible)-len(created)),
	)

	return s.toListResponse(lt, created), nil
}

// BulkAssign crosses active leave types with active users, skipping both
// ineligible roles and already-assigned pairs silently.
func (s *service) BulkAssign(ctx context.Context, req BulkAssignRequest) ([]LeaveBalanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("bulk assign requested",
		zap.String("request_id", rid),
		zap.Int("user_count", len(req.UserIDs)),
		zap.Int("leave_type_count", len(req.LeaveTypeIDs)),
	)

	leaveTypes, err := s.leaveTypes.FindActiveByIDs(ctx, req.LeaveTypeIDs)
	if err != nil {
		return nil, err
	}
	if len(leaveTypes) == 0 {
		return nil, leavebalanceerrors.ErrNoLeaveTypesFound
	}

	targets, err := s.users.FindActiveByIDs(ctx, req.UserIDs)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, usererrors.ErrNoValidUsers
	}

	year := time.Now().UTC().Year()
	responses := make([]LeaveBalanceResponse, 0, len(leaveTypes)*len(targets))
	createdTotal := 0

	for i := range leaveTypes {
		lt := &leaveTypes[i]
		created := make([]LeaveBalance, 0, len(targets))

		for _, u := range targets {
			if !lt.AllowsRole(u.Role) {
				continue
			}
			b, err := s.assignOne(ctx, rid, lt, u, year, req.OrganizationID)
			if err != nil {
				s.logger.Error("bulk assign failed for pair",
					zap.String("request_id", rid),
					zap.String("user_id", u.ID.String()),
					zap.String("leave_type_id", lt.ID.String()),
					zap.Error(err),
				)
				return nil, err
			}
			if b != nil {
				created = append(created, *b)
			}
		}

		createdTotal += len(created)
		responses = append(responses, s.toListResponse(lt, created)...)
	}

	s.logger.Info("bulk assign success",
		zap.String("request_id", rid),
		zap.Int("created", createdTotal),
	)

	return responses, nil
}

// assignOne creates a single ledger row in its own transaction. A nil row
// with nil error means the pair was already assigned. The unique index
// backstops the existence check against concurrent assignment.
func (s *service) assignOne(
	ctx context.Context,
	rid string,
	lt *leavetype.LeaveType,
	u user.User,
	year int,
	organizationID *string,
) (*LeaveBalance, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByUserTypeYear(ctx, u.ID.String(), lt.ID.String(), year); err == nil {
		return nil, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	b := &LeaveBalance{
		ID:             uuid.New(),
		UserID:         u.ID,
		LeaveTypeID:    lt.ID,
		Year:           year,
		TotalAllocated: lt.AnnualAllocation,
		OrganizationID: resolveOrganizationID(organizationID, lt.OrganizationID),
	}
	b.Recompute()

	if err := qtx.Create(ctx, b); err != nil {
		if errors.Is(mapRepositoryError(err), leavebalanceerrors.ErrAlreadyAssigned) {
			return nil, nil
		}
		return nil, err
	}

	// The gorm insert commits on its own connection; only the outbox write
	// rides the tx. An outbox failure here leaves the row without an event.
	if s.outbox != nil {
		event := events.LeaveBalanceAssignedEvent{
			EventType:      "leave_balance.assigned",
			RequestID:      rid,
			BalanceID:      b.ID.String(),
			UserID:         b.UserID.String(),
			LeaveTypeID:    b.LeaveTypeID.String(),
			Year:           b.Year,
			TotalAllocated: b.TotalAllocated,
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_balance",
			AggregateID:   b.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveBalanceAssignedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetUserBalances(ctx context.Context, userID string, year int) ([]LeaveBalanceResponse, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	balances, err := s.repo.FindAllByUserAndYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = toResponse(b, b.LeaveType)
	}
	return resp, nil
}

func (s *service) GetUserBalanceByType(ctx context.Context, userID, leaveTypeID string, year int) (LeaveBalanceResponse, error) {
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	b, err := s.repo.FindByUserTypeYear(ctx, userID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveBalanceResponse{}, leavebalanceerrors.ErrLeaveBalanceNotFound
		}
		return LeaveBalanceResponse{}, err
	}

	return toResponse(*b, b.LeaveType), nil
}

func (s *service) toListResponse(lt *leavetype.LeaveType, balances []LeaveBalance) []LeaveBalanceResponse {
	resp := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = toResponse(b, lt)
	}
	return resp
}

func toResponse(b LeaveBalance, lt *leavetype.LeaveType) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		ID:                 b.ID.String(),
		UserID:             b.UserID.String(),
		LeaveTypeID:        b.LeaveTypeID.String(),
		TotalAllocated:     b.TotalAllocated,
		UsedDays:           b.UsedDays,
		PendingDays:        b.PendingDays,
		CarriedForwardDays: b.CarriedForwardDays,
		RemainingDays:      b.RemainingDays,
		AvailableBalance:   b.AvailableBalance(),
		Year:               b.Year,
	}
	if lt != nil {
		ltResp := leavetype.ToResponse(*lt)
		resp.LeaveType = &ltResp
	}
	if b.OrganizationID != nil {
		resp.OrganizationID = b.OrganizationID.String()
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format(time.RFC3339)
	}
	if !b.UpdatedAt.IsZero() {
		resp.UpdatedAt = b.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func resolveOrganizationID(requested *string, fallback *uuid.UUID) *uuid.UUID {
	if requested != nil {
		if id, err := uuid.Parse(*requested); err == nil {
			return &id
		}
	}
	return fallback
}
