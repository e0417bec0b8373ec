package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7

	maxFailedLogins = 5
	lockoutDuration = time.Minute * 30
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l, now: time.Now}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same error as a bad password so the endpoint does not leak which
		// emails exist.
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if u.IsLocked(now) {
		s.logger.Warn("login rejected, account locked",
			zap.String("user_id", u.ID.String()),
			zap.Timep("locked_until", u.LockedUntil),
		)
		return "", "", AuthResponse{}, autherrors.ErrAccountLocked
	}
	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		attempts := u.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxFailedLogins {
			until := now.Add(lockoutDuration)
			lockedUntil = &until
			s.logger.Warn("account locked after repeated failures",
				zap.String("user_id", u.ID.String()),
				zap.Int("attempts", attempts),
			)
		}
		if err := s.users.UpdateLoginAttempts(ctx, u.ID.String(), attempts, lockedUntil); err != nil {
			s.logger.Error("persist failed login attempt failed",
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if u.FailedLoginAttempts > 0 || u.LockedUntil != nil {
		if err := s.users.UpdateLoginAttempts(ctx, u.ID.String(), 0, nil); err != nil {
			s.logger.Error("reset login attempts failed",
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
		}
	}

	accessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, toAuthResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !u.IsActive || u.IsLocked(s.now().UTC()) {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	newAccessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, toAuthResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidToken
		}
		return nil, err
	}

	resp := toAuthResponse(u)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	u := &user.User{
		ID:       uuid.New(),
		Email:    req.Email,
		FullName: req.FullName,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}
	if req.OrganizationID != nil {
		if orgID, err := uuid.Parse(*req.OrganizationID); err == nil {
			u.OrganizationID = &orgID
		}
	}

	if err := s.users.Create(ctx, u); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return toAuthResponse(u), nil
}

func (s *service) generateToken(u *user.User, expiry time.Duration) (string, error) {
	orgID := ""
	if u.OrganizationID != nil {
		orgID = u.OrganizationID.String()
	}
	claims := jwt.MapClaims{
		"user_id":         u.ID.String(),
		"organization_id": orgID,
		"role":            u.Role,
		"exp":             s.now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func toAuthResponse(u *user.User) AuthResponse {
	resp := AuthResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
	if u.OrganizationID != nil {
		resp.OrganizationID = u.OrganizationID.String()
	}
	return resp
}
