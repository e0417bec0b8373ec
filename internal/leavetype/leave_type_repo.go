package leavetype

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_type_repo.go -destination=mock/leave_type_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	Update(ctx context.Context, lt *LeaveType) error
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	FindByName(ctx context.Context, name string) (*LeaveType, error)
	FindAll(ctx context.Context, includeInactive bool) ([]LeaveType, error)
	FindActiveByRole(ctx context.Context, role string) ([]LeaveType, error)
	FindActiveByIDs(ctx context.Context, ids []string) ([]LeaveType, error)
	FindActiveByAccrualType(ctx context.Context, accrualType string) ([]LeaveType, error)
	FindActiveCarryForward(ctx context.Context) ([]LeaveType, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "name = ?", name).Error
	return &lt, err
}

func (r *repository) FindAll(ctx context.Context, includeInactive bool) ([]LeaveType, error) {
	var leaveTypes []LeaveType
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&leaveTypes).Error
	return leaveTypes, err
}

func (r *repository) FindActiveByRole(ctx context.Context, role string) ([]LeaveType, error) {
	var leaveTypes []LeaveType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("applicable_roles @> ?", fmt.Sprintf(`[%q]`, role)).
		Order("name ASC").
		Find(&leaveTypes).Error
	return leaveTypes, err
}

func (r *repository) FindActiveByIDs(ctx context.Context, ids []string) ([]LeaveType, error) {
	var leaveTypes []LeaveType
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Find(&leaveTypes).Error
	return leaveTypes, err
}

func (r *repository) FindActiveByAccrualType(ctx context.Context, accrualType string) ([]LeaveType, error) {
	var leaveTypes []LeaveType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("accrual_type = ?", accrualType).
		Find(&leaveTypes).Error
	return leaveTypes, err
}

func (r *repository) FindActiveCarryForward(ctx context.Context) ([]LeaveType, error) {
	var leaveTypes []LeaveType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("carry_forward_allowed = ?", true).
		Find(&leaveTypes).Error
	return leaveTypes, err
}
