package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/netpulse/netpulse/internal/auth"
	"github.com/netpulse/netpulse/internal/config"
	"github.com/netpulse/netpulse/internal/domain/user"
	apperrors "github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// AuthService handles login and token issuance
type AuthService struct {
	users  user.Repository
	cfg    config.AuthConfig
	logger *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users user.Repository, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		cfg:    cfg,
		logger: log,
	}
}

// Login verifies credentials and returns a signed token with the user
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, apperrors.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"email": email,
		}).Warn("Failed login attempt")
		return "", nil, apperrors.Unauthorized("invalid email or password")
	}

	token, err := auth.MintToken(u.ID, u.Email, u.Role, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to sign token")
		return "", nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User logged in")

	return token, u, nil
}

// Register creates a user with a bcrypt password hash
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.BadRequest("email and password are required")
	}
	if role == "" {
		role = user.RoleOperator
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("a user with this email already exists")
	}

	cost := s.cfg.BCryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}
	u.ID = id

	s.logger.WithFields(map[string]interface{}{
		"user_id": id,
		"role":    role,
	}).Info("User registered")

	return u, nil
}

// EnsureAdmin seeds the bootstrap admin account if it does not exist
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	existing, err := s.users.GetByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	_, err = s.Register(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, user.RoleAdmin)
	return err
}
