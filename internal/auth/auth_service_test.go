package auth_test

import (
	"context"
	"os"
	"testing"
	"time"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn              func(ctx context.Context, u *user.User) error
	getByIDFn             func(ctx context.Context, id string) (*user.User, error)
	getByEmailFn          func(ctx context.Context, email string) (*user.User, error)
	findActiveByIDsFn     func(ctx context.Context, ids []string) ([]user.User, error)
	updateLoginAttemptsFn func(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindActiveByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if f.findActiveByIDsFn != nil {
		return f.findActiveByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeUserRepository) UpdateLoginAttempts(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
	if f.updateLoginAttemptsFn != nil {
		return f.updateLoginAttemptsFn(ctx, id, attempts, lockedUntil)
	}
	return nil
}

func hashedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Email:    "jordan@example.com",
		FullName: "Jordan Blake",
		Password: string(hashed),
		Role:     user.RoleEmployee,
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	os.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues both tokens", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		svc := auth.NewService(repo)
		access, refresh, resp, err := svc.Login(ctx, u.Email, "correct horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, user.RoleEmployee, resp.Role)
	})

	t.Run("success clears prior failed attempts", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		u.FailedLoginAttempts = 3
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		reset := false
		repo.updateLoginAttemptsFn = func(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
			reset = true
			assert.Equal(t, 0, attempts)
			assert.Nil(t, lockedUntil)
			return nil
		}

		svc := auth.NewService(repo)
		_, _, _, err := svc.Login(ctx, u.Email, "correct horse")

		assert.NoError(t, err)
		assert.True(t, reset)
	})

	t.Run("wrong password increments the counter", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		u.FailedLoginAttempts = 1
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		var gotAttempts int
		var gotLocked *time.Time
		repo.updateLoginAttemptsFn = func(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
			gotAttempts = attempts
			gotLocked = lockedUntil
			return nil
		}

		svc := auth.NewService(repo)
		_, _, _, err := svc.Login(ctx, u.Email, "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		assert.Equal(t, 2, gotAttempts)
		assert.Nil(t, gotLocked)
	})

	t.Run("fifth failure locks the account", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		u.FailedLoginAttempts = 4
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		var gotLocked *time.Time
		repo.updateLoginAttemptsFn = func(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
			assert.Equal(t, 5, attempts)
			gotLocked = lockedUntil
			return nil
		}

		svc := auth.NewService(repo)
		_, _, _, err := svc.Login(ctx, u.Email, "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		if assert.NotNil(t, gotLocked) {
			assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), *gotLocked, 5*time.Second)
		}
	})

	t.Run("locked account is rejected before password check", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		until := time.Now().UTC().Add(10 * time.Minute)
		u.LockedUntil = &until
		u.FailedLoginAttempts = 5
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		svc := auth.NewService(repo)
		_, _, _, err := svc.Login(ctx, u.Email, "correct horse")

		assert.ErrorIs(t, err, autherrors.ErrAccountLocked)
	})

	t.Run("expired lock allows login again", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		until := time.Now().UTC().Add(-time.Minute)
		u.LockedUntil = &until
		u.FailedLoginAttempts = 5
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		svc := auth.NewService(repo)
		_, _, _, err := svc.Login(ctx, u.Email, "correct horse")

		assert.NoError(t, err)
	})

	t.Run("disabled account rejected", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		u.IsActive = false
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		svc := auth.NewService(repo)
		_, _, _, err := svc.Login(ctx, u.Email, "correct horse")

		assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
	})

	t.Run("unknown email looks like bad credentials", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	os.Setenv("JWT_SECRET", "test-secret")

	t.Run("round trip", func(t *testing.T) {
		repo := &fakeUserRepository{}
		u := hashedUser(t, "correct horse")
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}
		repo.getByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			assert.Equal(t, u.ID.String(), id)
			return u, nil
		}

		svc := auth.NewService(repo)
		_, refresh, _, err := svc.Login(ctx, u.Email, "correct horse")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})
		_, _, _, err := svc.RefreshToken(ctx, "not.a.token")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})
		_, err := svc.GetMe(ctx, uuid.New().String())

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
