package leavetype_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/leavetype"
	leavetypeerrors "go-hrms/internal/leavetype/errors"
	"go-hrms/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	withTxFn                  func(tx *sql.Tx) leavetype.Repository
	createFn                  func(ctx context.Context, lt *leavetype.LeaveType) error
	updateFn                  func(ctx context.Context, lt *leavetype.LeaveType) error
	findByIDFn                func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	findByNameFn              func(ctx context.Context, name string) (*leavetype.LeaveType, error)
	findAllFn                 func(ctx context.Context, includeInactive bool) ([]leavetype.LeaveType, error)
	findActiveByRoleFn        func(ctx context.Context, role string) ([]leavetype.LeaveType, error)
	findActiveByIDsFn         func(ctx context.Context, ids []string) ([]leavetype.LeaveType, error)
	findActiveByAccrualTypeFn func(ctx context.Context, accrualType string) ([]leavetype.LeaveType, error)
	findActiveCarryForwardFn  func(ctx context.Context) ([]leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context, includeInactive bool) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, includeInactive)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindActiveByRole(ctx context.Context, role string) ([]leavetype.LeaveType, error) {
	if f.findActiveByRoleFn != nil {
		return f.findActiveByRoleFn(ctx, role)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindActiveByIDs(ctx context.Context, ids []string) ([]leavetype.LeaveType, error) {
	if f.findActiveByIDsFn != nil {
		return f.findActiveByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindActiveByAccrualType(ctx context.Context, accrualType string) ([]leavetype.LeaveType, error) {
	if f.findActiveByAccrualTypeFn != nil {
		return f.findActiveByAccrualTypeFn(ctx, accrualType)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindActiveCarryForward(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findActiveCarryForwardFn != nil {
		return f.findActiveCarryForwardFn(ctx)
	}
	return nil, nil
}

type leaveTypeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leavetype.Service
	repo    *fakeLeaveTypeRepository
}

func setupLeaveTypeServiceTest(t *testing.T) *leaveTypeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveTypeRepository{}
	svc := leavetype.NewService(db, repo, nil)

	return &leaveTypeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
func strPtr(v string) *string {
	return &v
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		req := leavetype.CreateLeaveTypeRequest{
			Name:                "Sabbatical Leave",
			Description:         "Extended unpaid break",
			AnnualAllocation:    30,
			CarryForwardAllowed: true,
			MaxCarryForwardDays: intPtr(10),
			AccrualType:         leavetype.AccrualYearly,
			ApplicableRoles:     []string{user.RoleEmployee},
		}

		deps.repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			assert.Equal(t, "Sabbatical Leave", lt.Name)
			assert.Equal(t, 30, lt.AnnualAllocation)
			assert.True(t, lt.IsActive)
			assert.False(t, lt.IsSystemDefault)
			assert.True(t, lt.ApprovalRequired)
			assert.True(t, lt.HasBalanceRestriction)
			assert.NotEqual(t, uuid.Nil, lt.ID)
			return nil
		}

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "Sabbatical Leave", resp.Name)
		assert.True(t, resp.IsActive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByNameFn = func(ctx context.Context, name string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: uuid.New(), Name: name}, nil
		}

		_, err := deps.service.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:            "Casual Leave",
			AccrualType:     leavetype.AccrualMonthly,
			ApplicableRoles: []string{user.RoleEmployee},
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("carry forward without cap rejected", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:                "Broken Leave",
			CarryForwardAllowed: true,
			AccrualType:         leavetype.AccrualYearly,
			ApplicableRoles:     []string{user.RoleEmployee},
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrCarryForwardConfigInvalid)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveTypeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	existing := func() *leavetype.LeaveType {
		return &leavetype.LeaveType{
			ID:                  id,
			Name:                "Casual Leave",
			AnnualAllocation:    12,
			CarryForwardAllowed: true,
			MaxCarryForwardDays: intPtr(6),
			AccrualType:         leavetype.AccrualMonthly,
			ApplicableRoles:     []string{user.RoleEmployee},
			IsActive:            true,
		}
	}

	t.Run("merges patch fields only", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*leavetype.LeaveType, error) {
			assert.Equal(t, id.String(), gotID)
			return existing(), nil
		}
		deps.repo.updateFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			assert.Equal(t, 15, lt.AnnualAllocation)
			assert.Equal(t, "Casual Leave", lt.Name)
			assert.Equal(t, 6, *lt.MaxCarryForwardDays)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), leavetype.UpdateLeaveTypeRequest{
			AnnualAllocation: intPtr(15),
		})

		assert.NoError(t, err)
		assert.Equal(t, 15, resp.AnnualAllocation)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Update(ctx, uuid.New().String(), leavetype.UpdateLeaveTypeRequest{})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("rename collides with other type", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*leavetype.LeaveType, error) {
			return existing(), nil
		}
		deps.repo.findByNameFn = func(ctx context.Context, name string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: uuid.New(), Name: name}, nil
		}

		_, err := deps.service.Update(ctx, id.String(), leavetype.UpdateLeaveTypeRequest{
			Name: strPtr("Medical Leave"),
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameExists)
	})

	t.Run("enabling carry forward without cap rejected after merge", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*leavetype.LeaveType, error) {
			lt := existing()
			lt.CarryForwardAllowed = false
			lt.MaxCarryForwardDays = nil
			return lt, nil
		}

		_, err := deps.service.Update(ctx, id.String(), leavetype.UpdateLeaveTypeRequest{
			CarryForwardAllowed: boolPtr(true),
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrCarryForwardConfigInvalid)
	})
}

func TestLeaveTypeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Casual Leave", IsActive: true}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			assert.False(t, lt.IsActive)
			return nil
		}

		err := deps.service.Deactivate(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Deactivate(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}

func TestLeaveTypeService_GetAll_Caching(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss queries repo and stores result", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(db, repo, rdb)

		repoCalls := 0
		repo.findAllFn = func(ctx context.Context, includeInactive bool) ([]leavetype.LeaveType, error) {
			repoCalls++
			assert.False(t, includeInactive)
			return []leavetype.LeaveType{{ID: uuid.New(), Name: "Casual Leave", IsActive: true}}, nil
		}

		redisMock.ExpectGet(leavetype.ActiveListCacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(leavetype.ActiveListCacheKey, `.*`, 30*time.Minute).SetVal("OK")

		resp, err := svc.GetAll(ctx, false)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, 1, repoCalls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repo", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(db, repo, rdb)

		repo.findAllFn = func(ctx context.Context, includeInactive bool) ([]leavetype.LeaveType, error) {
			t.Fatal("repository should not be hit on cache hit")
			return nil, nil
		}

		cached, _ := json.Marshal([]leavetype.LeaveTypeResponse{{ID: uuid.New().String(), Name: "Medical Leave"}})
		redisMock.ExpectGet(leavetype.ActiveListCacheKey).SetVal(string(cached))

		resp, err := svc.GetAll(ctx, false)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Medical Leave", resp[0].Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("include inactive bypasses cache", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, includeInactive bool) ([]leavetype.LeaveType, error) {
			assert.True(t, includeInactive)
			return []leavetype.LeaveType{
				{ID: uuid.New(), Name: "Casual Leave", IsActive: true},
				{ID: uuid.New(), Name: "Retired Leave", IsActive: false},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx, true)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})
}

func TestLeaveTypeService_GetByRole(t *testing.T) {
	ctx := context.Background()

	deps := setupLeaveTypeServiceTest(t)
	defer deps.db.Close()

	deps.repo.findActiveByRoleFn = func(ctx context.Context, role string) ([]leavetype.LeaveType, error) {
		assert.Equal(t, user.RoleHRAdmin, role)
		return []leavetype.LeaveType{{ID: uuid.New(), Name: "Casual Leave"}}, nil
	}

	resp, err := deps.service.GetByRole(ctx, user.RoleHRAdmin)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestLeaveTypeService_BootstrapDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh database seeds all four", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		for i := 0; i < 4; i++ {
			expectTx(t, deps.sqlMock, true)
		}

		var created []string
		deps.repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			assert.True(t, lt.IsSystemDefault)
			assert.NotEqual(t, uuid.Nil, lt.ID)
			created = append(created, lt.Name)
			return nil
		}

		resp, err := deps.service.BootstrapDefaults(ctx, nil)

		assert.NoError(t, err)
		assert.Len(t, resp, 4)
		assert.Equal(t, []string{"Casual Leave", "Medical Leave", "Loss of Pay (LOP)", "Optional Leave"}, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("repeat run creates nothing", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		for i := 0; i < 4; i++ {
			expectTx(t, deps.sqlMock, false)
		}

		deps.repo.findByNameFn = func(ctx context.Context, name string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: uuid.New(), Name: name}, nil
		}
		deps.repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			t.Fatal("create should not run when the default already exists")
			return nil
		}

		resp, err := deps.service.BootstrapDefaults(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, resp)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("repo failure aborts run", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			return errors.New("connection reset")
		}

		_, err := deps.service.BootstrapDefaults(ctx, nil)

		assert.Error(t, err)
	})
}

func TestLeaveTypeService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Optional Leave", AnnualAllocation: 5}, nil
		}

		resp, err := deps.service.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, "Optional Leave", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupLeaveTypeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}
