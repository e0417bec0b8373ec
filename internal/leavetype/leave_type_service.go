package leavetype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	leavetypeerrors "go-hrms/internal/leavetype/errors"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ActiveListCacheKey = "leave_types:active"
	listCacheTTL       = 30 * time.Minute
)

//go:generate mockgen -source=leave_type_service.go -destination=mock/leave_type_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, id string) error
	GetAll(ctx context.Context, includeInactive bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	GetByRole(ctx context.Context, role string) ([]LeaveTypeResponse, error)
	BootstrapDefaults(ctx context.Context, organizationID *string) ([]LeaveTypeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested", zap.String("name", req.Name))

	if req.CarryForwardAllowed && req.MaxCarryForwardDays == nil {
		s.logger.Warn("create leave type carry forward config invalid", zap.String("name", req.Name))
		return LeaveTypeResponse{}, leavetypeerrors.ErrCarryForwardConfigInvalid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByName(ctx, req.Name); err == nil {
		s.logger.Warn("create leave type name collision", zap.String("name", req.Name))
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveTypeResponse{}, err
	}

	lt := &LeaveType{
		ID:                    uuid.New(),
		Name:                  req.Name,
		Description:           req.Description,
		AnnualAllocation:      req.AnnualAllocation,
		CarryForwardAllowed:   req.CarryForwardAllowed,
		MaxCarryForwardDays:   req.MaxCarryForwardDays,
		MaxConsecutiveDays:    req.MaxConsecutiveDays,
		ApprovalRequired:      boolOrDefault(req.ApprovalRequired, true),
		AccrualType:           req.AccrualType,
		ApplicableRoles:       req.ApplicableRoles,
		IsActive:              true,
		HasBalanceRestriction: boolOrDefault(req.HasBalanceRestriction, true),
		OrganizationID:        uuidPtr(req.OrganizationID),
	}

	if err := qtx.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
	)

	return ToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("update leave type requested", zap.String("leave_type_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	if req.Name != nil && *req.Name != lt.Name {
		existing, err := qtx.FindByName(ctx, *req.Name)
		if err == nil && existing.ID != lt.ID {
			s.logger.Warn("update leave type name collision",
				zap.String("leave_type_id", id),
				zap.String("name", *req.Name),
			)
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNameExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, err
		}
	}

	mergePatch(lt, req)

	// Revalidate the carry-forward invariant against the merged record, not
	// just the patch.
	if lt.CarryForwardAllowed && lt.MaxCarryForwardDays == nil {
		s.logger.Warn("update leave type carry forward config invalid", zap.String("leave_type_id", id))
		return LeaveTypeResponse{}, leavetypeerrors.ErrCarryForwardConfigInvalid
	}

	if err := qtx.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("update leave type success", zap.String("leave_type_id", id))

	return ToResponse(*lt), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	s.logger.Debug("deactivate leave type requested", zap.String("leave_type_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}

	// Soft-disable only. Existing ledger rows are untouched.
	lt.IsActive = false
	if err := qtx.Update(ctx, lt); err != nil {
		s.logger.Error("deactivate leave type persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("deactivate leave type success", zap.String("leave_type_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context, includeInactive bool) ([]LeaveTypeResponse, error) {
	// Only the active-only listing is cached; it is the hot master-data read.
	if includeInactive {
		leaveTypes, err := s.repo.FindAll(ctx, true)
		if err != nil {
			return nil, err
		}
		return toListResponse(leaveTypes), nil
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActiveListCacheKey).Result(); err == nil {
			var resp []LeaveTypeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveListCacheKey, func() (interface{}, error) {
		leaveTypes, err := s.repo.FindAll(ctx, false)
		if err != nil {
			return nil, err
		}

		resp := toListResponse(leaveTypes)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, ActiveListCacheKey, jsonData, listCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return ToResponse(*lt), nil
}

func (s *service) GetByRole(ctx context.Context, role string) ([]LeaveTypeResponse, error) {
	leaveTypes, err := s.repo.FindActiveByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return toListResponse(leaveTypes), nil
}

// BootstrapDefaults idempotently seeds the four system-default leave types.
// Each is created only if no policy with its name exists yet, so repeated
// calls never duplicate. Returns only the types created by this call.
func (s *service) BootstrapDefaults(ctx context.Context, organizationID *string) ([]LeaveTypeResponse, error) {
	s.logger.Debug("bootstrap default leave types requested")

	orgID := uuidPtr(organizationID)
	created := make([]LeaveType, 0, len(systemDefaults))

	for _, def := range systemDefaults {
		lt := def // copy, the template slice stays pristine
		lt.ID = uuid.New()
		lt.OrganizationID = orgID

		err := func() error {
			tx, err := s.db.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			defer tx.Rollback()

			qtx := s.repo.WithTx(tx)

			if _, err := qtx.FindByName(ctx, lt.Name); err == nil {
				return nil // already seeded
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := qtx.Create(ctx, &lt); err != nil {
				// A concurrent bootstrap may have won the insert; treat the
				// unique violation as already seeded.
				if errors.Is(mapRepositoryError(err), leavetypeerrors.ErrLeaveTypeNameExists) {
					return nil
				}
				return err
			}

			if err := tx.Commit(); err != nil {
				return err
			}
			created = append(created, lt)
			return nil
		}()
		if err != nil {
			s.logger.Error("bootstrap default leave type failed",
				zap.String("name", lt.Name),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if len(created) > 0 {
		s.invalidateListCache(ctx)
	}
	s.logger.Info("bootstrap default leave types success", zap.Int("created", len(created)))

	return toListResponse(created), nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave type cache",
			zap.String("key", ActiveListCacheKey),
			zap.Error(err),
		)
	}
}

func mergePatch(lt *LeaveType, req UpdateLeaveTypeRequest) {
	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.Description != nil {
		lt.Description = *req.Description
	}
	if req.AnnualAllocation != nil {
		lt.AnnualAllocation = *req.AnnualAllocation
	}
	if req.CarryForwardAllowed != nil {
		lt.CarryForwardAllowed = *req.CarryForwardAllowed
	}
	if req.MaxCarryForwardDays != nil {
		lt.MaxCarryForwardDays = req.MaxCarryForwardDays
	}
	if req.MaxConsecutiveDays != nil {
		lt.MaxConsecutiveDays = req.MaxConsecutiveDays
	}
	if req.ApprovalRequired != nil {
		lt.ApprovalRequired = *req.ApprovalRequired
	}
	if req.AccrualType != nil {
		lt.AccrualType = *req.AccrualType
	}
	if req.ApplicableRoles != nil {
		lt.ApplicableRoles = req.ApplicableRoles
	}
	if req.HasBalanceRestriction != nil {
		lt.HasBalanceRestriction = *req.HasBalanceRestriction
	}
}

var defaultRoles = []string{user.RoleEmployee, user.RoleReportingManager, user.RoleHRAdmin}

var systemDefaults = []LeaveType{
	{
		Name:                  "Casual Leave",
		Description:           "Casual leave for personal matters",
		AnnualAllocation:      12,
		CarryForwardAllowed:   true,
		MaxCarryForwardDays:   intPtr(6),
		MaxConsecutiveDays:    intPtr(5),
		ApprovalRequired:      true,
		AccrualType:           AccrualMonthly,
		ApplicableRoles:       defaultRoles,
		IsActive:              true,
		IsSystemDefault:       true,
		HasBalanceRestriction: true,
	},
	{
		Name:                  "Medical Leave",
		Description:           "Medical leave for health-related issues",
		AnnualAllocation:      15,
		CarryForwardAllowed:   false,
		MaxConsecutiveDays:    intPtr(30),
		ApprovalRequired:      true,
		AccrualType:           AccrualYearly,
		ApplicableRoles:       defaultRoles,
		IsActive:              true,
		IsSystemDefault:       true,
		HasBalanceRestriction: true,
	},
	{
		Name:                  "Loss of Pay (LOP)",
		Description:           "Loss of Pay leave - no balance restriction",
		AnnualAllocation:      0,
		CarryForwardAllowed:   false,
		ApprovalRequired:      true,
		AccrualType:           AccrualYearly,
		ApplicableRoles:       defaultRoles,
		IsActive:              true,
		IsSystemDefault:       true,
		HasBalanceRestriction: false,
	},
	{
		Name:                  "Optional Leave",
		Description:           "Optional leave for special occasions",
		AnnualAllocation:      5,
		CarryForwardAllowed:   false,
		MaxConsecutiveDays:    intPtr(3),
		ApprovalRequired:      true,
		AccrualType:           AccrualYearly,
		ApplicableRoles:       defaultRoles,
		IsActive:              true,
		IsSystemDefault:       true,
		HasBalanceRestriction: true,
	},
}

// ToResponse converts an entity into its API shape. Exported because ledger
// responses embed the owning policy.
func ToResponse(lt LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:                    lt.ID.String(),
		Name:                  lt.Name,
		Description:           lt.Description,
		AnnualAllocation:      lt.AnnualAllocation,
		CarryForwardAllowed:   lt.CarryForwardAllowed,
		MaxCarryForwardDays:   lt.MaxCarryForwardDays,
		MaxConsecutiveDays:    lt.MaxConsecutiveDays,
		ApprovalRequired:      lt.ApprovalRequired,
		AccrualType:           lt.AccrualType,
		ApplicableRoles:       lt.ApplicableRoles,
		IsActive:              lt.IsActive,
		IsSystemDefault:       lt.IsSystemDefault,
		HasBalanceRestriction: lt.HasBalanceRestriction,
	}
	if lt.OrganizationID != nil {
		resp.OrganizationID = lt.OrganizationID.String()
	}
	if !lt.CreatedAt.IsZero() {
		resp.CreatedAt = lt.CreatedAt.Format(time.RFC3339)
	}
	if !lt.UpdatedAt.IsZero() {
		resp.UpdatedAt = lt.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func toListResponse(leaveTypes []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(leaveTypes))
	for i, lt := range leaveTypes {
		resp[i] = ToResponse(lt)
	}
	return resp
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intPtr(v int) *int {
	return &v
}

func uuidPtr(v *string) *uuid.UUID {
	if v == nil {
		return nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil
	}
	return &id
}
