package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"attendtrack/config"
	"attendtrack/internal/dto"
	"attendtrack/internal/model"
	"attendtrack/internal/repository"
	pkgerrors "attendtrack/pkg/errors"
	"attendtrack/pkg/jwt"
	"attendtrack/pkg/redis"
)

// ── auth business errors ──

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService instance.
func NewAuthService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("create user", zap.Error(err))
		return nil, err
	}

	resp := &dto.UserResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	switch req.Role {
	case model.RoleStudent:
		student := &model.Student{
			StudentCode: req.StudentCode,
			Name:        req.Name,
			UserID:      user.UserID,
		}
		if err := s.repo.Student.Create(ctx, student); err != nil {
			s.logger.Error("create student profile", zap.String("user_id", user.UserID), zap.Error(err))
			return nil, err
		}
		resp.StudentCode = student.StudentCode
	case model.RoleLecturer:
		lecturer := &model.Lecturer{
			Name:   req.Name,
			UserID: user.UserID,
		}
		if err := s.repo.Lecturer.Create(ctx, lecturer); err != nil {
			s.logger.Error("create lecturer profile", zap.String("user_id", user.UserID), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role))

	return resp, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("look up user", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("sign access token", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("sign refresh token", zap.Error(err))
		return nil, err
	}

	resp := &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:    user.UserID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}
	if user.Student != nil {
		resp.User.StudentCode = user.Student.StudentCode
	}

	s.logger.Info("user logged in", zap.String("user_id", user.UserID))
	return resp, nil
}

// ────────────────────── Logout ──────────────────────

// Logout revokes a refresh token by blacklisting its JWT ID for the
// remainder of its lifetime. Without Redis, logout is client-side only.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		// Expired or garbage tokens need no revocation.
		return nil
	}
	if claims.TokenType != "refresh" {
		return nil
	}

	if s.rdb == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("blacklist refresh token", zap.Error(err))
		return err
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("look up user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := &dto.UserResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.Student != nil {
		resp.StudentCode = user.Student.StudentCode
	}
	return resp, nil
}
