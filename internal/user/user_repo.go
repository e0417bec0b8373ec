package user

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FindActiveByIDs resolves ids to active, non-deleted users. Unknown or
	// inactive ids are silently absent from the result.
	FindActiveByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateLoginAttempts(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindActiveByIDs(ctx context.Context, ids []string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Find(&users).Error
	return users, err
}

func (r *repository) UpdateLoginAttempts(ctx context.Context, id string, attempts int, lockedUntil *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"failed_login_attempts": attempts,
			"locked_until":          lockedUntil,
		}).Error
}
