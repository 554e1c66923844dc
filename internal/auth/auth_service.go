package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "hrconnect/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)
	Me(ctx context.Context, userID string) (MeResponse, error)
}

type service struct {
	repo   Repository
	secret []byte
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithClock(repo, time.Now, logger...)
}

func NewServiceWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:   repo,
		secret: []byte(os.Getenv("JWT_SECRET")),
		now:    now,
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error for unknown email and bad password.
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.String("email", req.Email))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.repo.TouchLastLogin(ctx, user.ID.String(), now); err != nil {
		s.logger.Error("touch last login failed", zap.Error(err))
	}

	tokens, err := s.issueTokens(user, now)
	if err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return tokens, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error) {
	token, err := jwt.Parse(req.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if kind, _ := claims["token_type"].(string); kind != "refresh" {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenResponse{}, err
	}

	return s.issueTokens(user, s.now().UTC())
}

func (s *service) Me(ctx context.Context, userID string) (MeResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrUserNotFound
		}
		return MeResponse{}, err
	}

	resp := MeResponse{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	}
	if user.EmployeeID != nil {
		resp.EmployeeID = user.EmployeeID.String()
	}
	return resp, nil
}

func (s *service) issueTokens(user *User, now time.Time) (TokenResponse, error) {
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = user.EmployeeID.String()
	}

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": employeeID,
		"role":        user.Role,
		"iat":         now.Unix(),
		"exp":         now.Add(accessTokenTTL).Unix(),
	})
	accessToken, err := access.SignedString(s.secret)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID.String(),
		"token_type": "refresh",
		"iat":        now.Unix(),
		"exp":        now.Add(refreshTokenTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString(s.secret)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}
